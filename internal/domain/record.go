package domain

// ChangeRecord is a single change-stream notification for an uploaded file.
// The upstream stream filter guarantees all three attributes are present on
// the records this system receives.
type ChangeRecord struct {
	FileID             string
	UserID             string
	TransformedFileKey string
}

// Credentials is the endpoint/key pair used to file an image issue report.
// It is fetched fresh inside each soft-failure branch and never cached.
type Credentials struct {
	APIURL string
	APIKey string
}
