// Package sqlite implements the on-device account cache on a single-file
// SQLite database through GORM. The cache is a disposable projection of the
// remote account record, keyed by the canonical account ID.
package sqlite

import (
	"time"

	"ecell/internal/domain/entity"
)

// accountModel is the cached row shape. Dates are stored as unix
// milliseconds so the file stays portable across devices and timezones.
type accountModel struct {
	ID                string `gorm:"column:id;primaryKey"`
	Name              string `gorm:"column:name"`
	Email             string `gorm:"column:email"`
	Password          string `gorm:"column:password"`
	LibraryID         string `gorm:"column:library_id"`
	Branch            string `gorm:"column:branch"`
	PhoneNumber       string `gorm:"column:phone_number"`
	ProfilePic        string `gorm:"column:profile_pic"`
	AccessType        string `gorm:"column:access_type"`
	AccountType       string `gorm:"column:account_type"`
	PortfolioURL      string `gorm:"column:portfolio_url"`
	LinkedinURL       string `gorm:"column:linkedin_url"`
	InstagramURL      string `gorm:"column:instagram_url"`
	Position          string `gorm:"column:position"`
	Status            string `gorm:"column:status"`
	UniversityRollNo  string `gorm:"column:university_roll_no"`
	KietEmail         string `gorm:"column:kiet_email"`
	AccommodationType string `gorm:"column:accommodation_type"`
	City              string `gorm:"column:city"`
	Domain            string `gorm:"column:domain"`
	Year              string `gorm:"column:year"`
	DOB               int64  `gorm:"column:dob"`
	ShirtSize         string `gorm:"column:shirt_size"`
	CreatedOn         int64  `gorm:"column:created_on"`
}

// TableName overrides the GORM table name.
func (accountModel) TableName() string {
	return "ecell_accounts"
}

func toModel(account *entity.Account) *accountModel {
	var dob int64
	if !account.DOB.IsZero() {
		dob = account.DOB.UnixMilli()
	}

	var createdOn int64
	if !account.CreatedOn.IsZero() {
		createdOn = account.CreatedOn.UnixMilli()
	}

	return &accountModel{
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
		CreatedOn:         createdOn,
	}
}

func toEntity(model *accountModel) *entity.Account {
	var dob time.Time
	if model.DOB != 0 {
		dob = time.UnixMilli(model.DOB)
	}

	var createdOn time.Time
	if model.CreatedOn != 0 {
		createdOn = time.UnixMilli(model.CreatedOn)
	}

	return &entity.Account{
		ID:                model.ID,
		Name:              model.Name,
		Email:             model.Email,
		Password:          model.Password,
		LibraryID:         model.LibraryID,
		Branch:            model.Branch,
		PhoneNumber:       model.PhoneNumber,
		ProfilePic:        model.ProfilePic,
		AccessType:        model.AccessType,
		AccountType:       model.AccountType,
		PortfolioURL:      model.PortfolioURL,
		LinkedinURL:       model.LinkedinURL,
		InstagramURL:      model.InstagramURL,
		Designation:       model.Position,
		Status:            model.Status,
		UniversityRollNo:  model.UniversityRollNo,
		CollegeEmail:      model.KietEmail,
		AccommodationType: model.AccommodationType,
		City:              model.City,
		Domain:            model.Domain,
		Year:              model.Year,
		DOB:               dob,
		ShirtSize:         model.ShirtSize,
		CreatedOn:         createdOn,
	}
}
