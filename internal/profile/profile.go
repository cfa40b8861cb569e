// Package profile keeps what a visitor has told the site about themselves so that later forms can be pre-filled and
// member content unlocked.
package profile

import (
	"context"
	"strconv"
)

// Field is a profile key.
type Field string

const (
	FieldEmail           Field = "email"
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldCompany         Field = "company"
	FieldSector          Field = "sector"
	FieldIRIScore        Field = "iriScore"
	FieldIsPremiumMember Field = "isPremiumMember"
)

var Fields = []Field{
	FieldEmail, FieldFirstName, FieldLastName, FieldCompany, FieldSector, FieldIRIScore, FieldIsPremiumMember,
}

// Profile is the visitor as known to the site.
type Profile struct {
	Email           string
	FirstName       string
	LastName        string
	Company         string
	Sector          string
	IRIScore        string
	IsPremiumMember bool
}

// HasEmail reports whether the visitor already passed an email gate.
func (p Profile) HasEmail() bool {
	return p.Email != ""
}

// Store is a schemaless key-value store scoped to one visitor.
type Store interface {
	GetField(ctx context.Context, field Field) string
	SetField(ctx context.Context, field Field, value string)
}

// Load reads the whole profile from s.
func Load(ctx context.Context, s Store) Profile {
	premium, _ := strconv.ParseBool(s.GetField(ctx, FieldIsPremiumMember))
	return Profile{
		Email:           s.GetField(ctx, FieldEmail),
		FirstName:       s.GetField(ctx, FieldFirstName),
		LastName:        s.GetField(ctx, FieldLastName),
		Company:         s.GetField(ctx, FieldCompany),
		Sector:          s.GetField(ctx, FieldSector),
		IRIScore:        s.GetField(ctx, FieldIRIScore),
		IsPremiumMember: premium,
	}
}

// Remember writes the non-empty fields of p to s. Membership is only ever granted, never revoked.
func Remember(ctx context.Context, s Store, p Profile) {
	set := func(field Field, value string) {
		if value != "" {
			s.SetField(ctx, field, value)
		}
	}
	set(FieldEmail, p.Email)
	set(FieldFirstName, p.FirstName)
	set(FieldLastName, p.LastName)
	set(FieldCompany, p.Company)
	set(FieldSector, p.Sector)
	set(FieldIRIScore, p.IRIScore)
	if p.IsPremiumMember {
		s.SetField(ctx, FieldIsPremiumMember, strconv.FormatBool(true))
	}
}
