package model

import (
	"github.com/shopspring/decimal"
)

// Draft is the already-validated input for creating a goal.
// Zero TargetAmount and empty Category are filled with defaults on create.
type Draft struct {
	Name          string
	Description   string
	Type          string
	Category      Category
	StartDate     Date
	Deadline      Date
	CheckInPerson string
	CheckInEmail  string
	TargetAmount  decimal.Decimal
}

// Patch is a sparse update. Only non-nil fields overwrite the stored goal,
// so an explicit zero amount or empty description is applied as given.
type Patch struct {
	Name          *string
	Description   *string
	Category      *Category
	Deadline      *Date
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Status        *Status
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.Deadline == nil &&
		p.TargetAmount == nil &&
		p.CurrentAmount == nil &&
		p.Status == nil
}

// TouchesAmount reports whether applying p changes an input of status derivation.
func (p Patch) TouchesAmount() bool {
	return p.TargetAmount != nil || p.CurrentAmount != nil
}

// Apply merges p into g.
func (p Patch) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
}
