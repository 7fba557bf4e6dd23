package animals

import (
	"time"

	"cloud.google.com/go/civil"
)

// Age is an age class. Its boundaries depend on the species.
type Age string

const (
	AgeJunior Age = "JUNIOR"
	AgeAdult  Age = "ADULT"
	AgeSenior Age = "SENIOR"
)

// Ages lists every age class in display order.
var Ages = []Age{AgeJunior, AgeAdult, AgeSenior}

// Label returns the French display label.
func (a Age) Label() string {
	switch a {
	case AgeJunior:
		return "Junior"
	case AgeAdult:
		return "Adulte"
	case AgeSenior:
		return "Senior"
	default:
		return string(a)
	}
}

// ageThresholds are the ages, in months, at which a species stops being junior
// and becomes senior.
type ageThresholds struct {
	adultMonths  int
	seniorMonths int
}

var thresholds = map[Species]ageThresholds{
	SpeciesBird:    {adultMonths: 12, seniorMonths: 120},
	SpeciesCat:     {adultMonths: 12, seniorMonths: 132},
	SpeciesDog:     {adultMonths: 12, seniorMonths: 96},
	SpeciesReptile: {adultMonths: 12, seniorMonths: 120},
	SpeciesRodent:  {adultMonths: 6, seniorMonths: 36},
}

// BirthdateBounds returns the birthdates matching age for species on day
// today. after is exclusive, onOrBefore inclusive; a zero date is unbounded.
func BirthdateBounds(species Species, age Age, today civil.Date) (after, onOrBefore civil.Date) {
	t, ok := thresholds[species]
	if !ok {
		return civil.Date{}, civil.Date{}
	}
	adultSince := monthsBefore(today, t.adultMonths)
	seniorSince := monthsBefore(today, t.seniorMonths)
	switch age {
	case AgeJunior:
		return adultSince, civil.Date{}
	case AgeAdult:
		return seniorSince, adultSince
	case AgeSenior:
		return civil.Date{}, seniorSince
	default:
		return civil.Date{}, civil.Date{}
	}
}

// AgeOf classifies a birthdate for species on day today.
func AgeOf(species Species, birthdate, today civil.Date) Age {
	t, ok := thresholds[species]
	if !ok {
		return AgeAdult
	}
	switch {
	case birthdate.After(monthsBefore(today, t.adultMonths)):
		return AgeJunior
	case birthdate.After(monthsBefore(today, t.seniorMonths)):
		return AgeAdult
	default:
		return AgeSenior
	}
}

func monthsBefore(d civil.Date, months int) civil.Date {
	return civil.DateOf(d.In(time.UTC).AddDate(0, -months, 0))
}
