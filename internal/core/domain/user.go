package domain

// User represents a user of the application in the domain.
type User struct {
	UserID        string `json:"userID"` // Primary Key (UUID)
	Username      string `json:"username"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Contact       string `json:"contact"`
	PasswordHash  string `json:"-"` // empty for Google-only users
	GoogleSubject string `json:"-"`
	AuditFields
}

// NewUser is the content of a signup request.
type NewUser struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Contact   string
}

// GoogleUserInfo holds the identity fields read from a Google ID token.
type GoogleUserInfo struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}
