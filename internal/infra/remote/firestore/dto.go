// Package firestore implements the remote account document store on Cloud
// Firestore. Documents live in the "Team Members" collection under names
// derived from the member's display name and canonical key.
package firestore

import (
	"time"

	"ecell/internal/domain/entity"
)

// dateLayout is the wire format of the dob field.
const dateLayout = "2006-01-02"

// accountDTO is the Firestore document shape. Field names are fixed by the
// deployed collection; changing them orphans existing documents.
type accountDTO struct {
	ID                string `firestore:"id"`
	Name              string `firestore:"name"`
	Email             string `firestore:"email"`
	Password          string `firestore:"password"`
	LibraryID         string `firestore:"library_id"`
	Branch            string `firestore:"branch"`
	PhoneNumber       string `firestore:"phone_number"`
	ProfilePic        string `firestore:"profile_pic"`
	AccessType        string `firestore:"access_type"`
	AccountType       string `firestore:"account_type"`
	PortfolioURL      string `firestore:"portfolio_url"`
	LinkedinURL       string `firestore:"linkedin_url"`
	InstagramURL      string `firestore:"instagram_url"`
	Position          string `firestore:"position"`
	Status            string `firestore:"status"`
	UniversityRollNo  string `firestore:"university_roll_no"`
	KietEmail         string `firestore:"kiet_email"`
	AccommodationType string `firestore:"accommodation_type"`
	City              string `firestore:"city"`
	Domain            string `firestore:"domain"`
	Year              string `firestore:"year"`
	DOB               string `firestore:"dob"`
	ShirtSize         string `firestore:"shirt_size"`
	CreatedOn         int64  `firestore:"created_on"`
}

func toDTO(account *entity.Account) *accountDTO {
	dob := ""
	if !account.DOB.IsZero() {
		dob = account.DOB.Format(dateLayout)
	}

	return &accountDTO{
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

func fromDTO(dto *accountDTO) *entity.Account {
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
