// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Access types stored in the account document's access_type field.
const (
	AccessTypeUser  = "USER ACCESS"
	AccessTypeTeam  = "TEAM ACCESS"
	AccessTypeAdmin = "ADMIN ACCESS"
)

// Account types stored in the account document's account_type field.
const (
	AccountTypeUser       = "USER"
	AccountTypeTeamMember = "TEAM MEMBER"
)

// Verification statuses an account moves through after signup.
const (
	StatusPending  = "PENDING"
	StatusInReview = "IN REVIEW"
	StatusVerified = "VERIFIED"
	StatusBlocked  = "BLOCKED"
)

// Accommodation types for the academic profile section.
const (
	AccommodationDayScholar = "DAY SCHOLAR"
	AccommodationHosteler   = "HOSTELER"
)

// Account is the canonical member record. The remote document store holds the
// authoritative copy; the local cache store keeps a per-device projection of
// it keyed by ID.
//
// ID is the Firebase authentication UID, assigned at signup and immutable.
// It is the single canonical key threaded through the cache primary key, the
// remote query field, and every facade key parameter.
type Account struct {
	ID                string    // Authentication UID; primary key everywhere.
	Name              string    // Display name; also part of the remote document name.
	Email             string    // Login identifier; globally unique across accounts.
	Password          string    // Credential placeholder (bcrypt hash), never the live credential.
	LibraryID         string    // College library card number; globally unique across accounts.
	Branch            string    // Academic branch, e.g. "CSE".
	PhoneNumber       string    // Contact phone number.
	ProfilePic        string    // Profile picture URL.
	AccessType        string    // One of the AccessType* constants.
	AccountType       string    // One of the AccountType* constants.
	PortfolioURL      string    // Personal portfolio link.
	LinkedinURL       string    // LinkedIn profile link.
	InstagramURL      string    // Instagram profile link.
	Designation       string    // Role within the organization, e.g. "Design Lead".
	Status            string    // One of the Status* constants.
	UniversityRollNo  string    // University roll number.
	CollegeEmail      string    // Institutional email, distinct from the login email.
	AccommodationType string    // One of the Accommodation* constants.
	City              string    // Home city.
	Domain            string    // Working domain within the organization, e.g. "Tech".
	Year              string    // Academic year, e.g. "2".
	DOB               time.Time // Date of birth.
	ShirtSize         string    // Merch shirt size.
	CreatedOn         time.Time // Timestamp of account creation.
}

// NewAccount builds the Account written at signup time. Everything beyond the
// required identity fields starts out empty and is filled in later through
// the edit flow; status and access default to the freshly-registered state.
func NewAccount(id, name, email, passwordHash, libraryID, phoneNumber string) *Account {
	return &Account{
		ID:          id,
		Name:        name,
		Email:       email,
		Password:    passwordHash,
		LibraryID:   libraryID,
		PhoneNumber: phoneNumber,
		AccessType:  AccessTypeUser,
		AccountType: AccountTypeUser,
		Status:      StatusPending,
		CreatedOn:   time.Now(),
	}
}
