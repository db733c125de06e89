// Package rest implements the remote account source against the portal HTTP
// API. It mirrors the document-store semantics over JSON endpoints and maps
// HTTP statuses into the remote error taxonomy.
package rest

import (
	"time"

	"ecell/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// accountJSON is the portal API wire shape; field names match the document
// store so the backend can proxy straight through.
type accountJSON struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	LibraryID         string `json:"library_id"`
	Branch            string `json:"branch"`
	PhoneNumber       string `json:"phone_number"`
	ProfilePic        string `json:"profile_pic"`
	AccessType        string `json:"access_type"`
	AccountType       string `json:"account_type"`
	PortfolioURL      string `json:"portfolio_url"`
	LinkedinURL       string `json:"linkedin_url"`
	InstagramURL      string `json:"instagram_url"`
	Position          string `json:"position"`
	Status            string `json:"status"`
	UniversityRollNo  string `json:"university_roll_no"`
	KietEmail         string `json:"kiet_email"`
	AccommodationType string `json:"accommodation_type"`
	City              string `json:"city"`
	Domain            string `json:"domain"`
	Year              string `json:"year"`
	DOB               string `json:"dob"`
	ShirtSize         string `json:"shirt_size"`
	CreatedOn         int64  `json:"created_on"`
}

func toJSON(account *entity.Account) *accountJSON {
	dob := ""
	if !account.DOB.IsZero() {
		dob = account.DOB.Format(dateLayout)
	}

	return &accountJSON{
		ID:                account.ID,
		Name:              account.Name,
		Email:             account.Email,
		Password:          account.Password,
		LibraryID:         account.LibraryID,
		Branch:            account.Branch,
		PhoneNumber:       account.PhoneNumber,
		ProfilePic:        account.ProfilePic,
		AccessType:        account.AccessType,
		AccountType:       account.AccountType,
		PortfolioURL:      account.PortfolioURL,
		LinkedinURL:       account.LinkedinURL,
		InstagramURL:      account.InstagramURL,
		Position:          account.Designation,
		Status:            account.Status,
		UniversityRollNo:  account.UniversityRollNo,
		KietEmail:         account.CollegeEmail,
		AccommodationType: account.AccommodationType,
		City:              account.City,
		Domain:            account.Domain,
		Year:              account.Year,
		DOB:               dob,
		ShirtSize:         account.ShirtSize,
		CreatedOn:         account.CreatedOn.UnixMilli(),
	}
}

func fromJSON(dto *accountJSON) *entity.Account {
	var dob time.Time
	if dto.DOB != "" {
		if parsed, err := time.Parse(dateLayout, dto.DOB); err == nil {
			dob = parsed
		}
	}

	var createdOn time.Time
	if dto.CreatedOn != 0 {
		createdOn = time.UnixMilli(dto.CreatedOn)
	}

	return &entity.Account{
		ID:                dto.ID,
		Name:              dto.Name,
		Email:             dto.Email,
		Password:          dto.Password,
		LibraryID:         dto.LibraryID,
		Branch:            dto.Branch,
		PhoneNumber:       dto.PhoneNumber,
		ProfilePic:        dto.ProfilePic,
		AccessType:        dto.AccessType,
		AccountType:       dto.AccountType,
		PortfolioURL:      dto.PortfolioURL,
		LinkedinURL:       dto.LinkedinURL,
		InstagramURL:      dto.InstagramURL,
		Designation:       dto.Position,
		Status:            dto.Status,
		UniversityRollNo:  dto.UniversityRollNo,
		CollegeEmail:      dto.KietEmail,
		AccommodationType: dto.AccommodationType,
		City:              dto.City,
		Domain:            dto.Domain,
		Year:              dto.Year,
		DOB:               dob,
		ShirtSize:         dto.ShirtSize,
		CreatedOn:         createdOn,
	}
}
