package types

import "time"

// User represents an account in the system.
// It contains identity, role, profile, and audit metadata.
type User struct {
	// ID is the store-assigned identifier of the user.
	ID string `json:"id" bson:"_id,omitempty"`

	// Email is the user's unique login identifier, lower-case
	// normalized at write time.
	Email string `json:"email" bson:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" bson:"password"`

	// Role indicates the user's authorization level.
	Role UserRole `json:"role" bson:"role"`

	// Active gates login; deactivated users keep their record but
	// cannot authenticate.
	Active bool `json:"active" bson:"active"`

	// Profile holds the user's descriptive fields.
	Profile UserProfile `json:"profile" bson:"profile"`

	// CreatedDate is the timestamp when the account was created.
	CreatedDate time.Time `json:"createdDate" bson:"createdDate"`

	// LastModifiedDate is the timestamp of the most recent save.
	LastModifiedDate time.Time `json:"lastModifiedDate" bson:"lastModifiedDate"`
}

// UserProfile is the descriptive portion of an account, embedded in
// the user document.
type UserProfile struct {
	FirstName   string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Avatar      string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio         string `json:"bio,omitempty" bson:"bio,omitempty"`
	Institution string `json:"institution,omitempty" bson:"institution,omitempty"`
	Expertise   string `json:"expertise,omitempty" bson:"expertise,omitempty"`
}

// FullName joins the profile's first and last names.
func (p UserProfile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// UserView is the public projection of a user returned by the API.
// It never carries the password hash.
type UserView struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Institution string   `json:"institution,omitempty"`
	Expertise   string   `json:"expertise,omitempty"`
}

// View projects the user into its public API shape.
func (u User) View() UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		FirstName:   u.Profile.FirstName,
		LastName:    u.Profile.LastName,
		Avatar:      u.Profile.Avatar,
		Bio:         u.Profile.Bio,
		Institution: u.Profile.Institution,
		Expertise:   u.Profile.Expertise,
	}
}

// Principal is the authenticated caller as resolved from a bearer
// token by the auth middleware.
type Principal struct {
	UserID string
	Email  string
	Role   UserRole
}
