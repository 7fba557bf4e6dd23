package animals

import (
	"time"

	"github.com/google/uuid"
)

// Status is the shelter status of an animal.
type Status string

const (
	StatusAdopted           Status = "ADOPTED"
	StatusDeceased          Status = "DECEASED"
	StatusFree              Status = "FREE"
	StatusInSafePlace       Status = "IN_SAFE_PLACE"
	StatusLost              Status = "LOST"
	StatusOpenToAdoption    Status = "OPEN_TO_ADOPTION"
	StatusOpenToReservation Status = "OPEN_TO_RESERVATION"
	StatusReserved          Status = "RESERVED"
	StatusRetired           Status = "RETIRED"
	StatusReturned          Status = "RETURNED"
	StatusTransferred       Status = "TRANSFERRED"
	StatusUnavailable       Status = "UNAVAILABLE"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusAdopted,
	StatusDeceased,
	StatusFree,
	StatusInSafePlace,
	StatusLost,
	StatusOpenToAdoption,
	StatusOpenToReservation,
	StatusReserved,
	StatusRetired,
	StatusReturned,
	StatusTransferred,
	StatusUnavailable,
}

// ActiveStatuses are the statuses of animals still in the shelter's care.
var ActiveStatuses = []Status{
	StatusInSafePlace,
	StatusOpenToAdoption,
	StatusOpenToReservation,
	StatusReserved,
	StatusUnavailable,
}

// AdoptableStatuses are the statuses shown on the public adoption site.
var AdoptableStatuses = []Status{
	StatusOpenToAdoption,
	StatusOpenToReservation,
}

// Label returns the French display label.
func (s Status) Label() string {
	switch s {
	case StatusAdopted:
		return "Adopté"
	case StatusDeceased:
		return "Décédé"
	case StatusFree:
		return "Libre"
	case StatusInSafePlace:
		return "En lieu sûr"
	case StatusLost:
		return "Perdu"
	case StatusOpenToAdoption:
		return "Adoptable"
	case StatusOpenToReservation:
		return "Réservable"
	case StatusReserved:
		return "Réservé"
	case StatusRetired:
		return "Retraité"
	case StatusReturned:
		return "Restitué"
	case StatusTransferred:
		return "Transféré"
	case StatusUnavailable:
		return "Indisponible"
	default:
		return string(s)
	}
}

// Species of an animal.
type Species string

const (
	SpeciesBird    Species = "BIRD"
	SpeciesCat     Species = "CAT"
	SpeciesDog     Species = "DOG"
	SpeciesReptile Species = "REPTILE"
	SpeciesRodent  Species = "RODENT"
)

// AllSpecies lists every species in display order.
var AllSpecies = []Species{SpeciesBird, SpeciesCat, SpeciesDog, SpeciesReptile, SpeciesRodent}

// Label returns the French display label.
func (s Species) Label() string {
	switch s {
	case SpeciesBird:
		return "Oiseau"
	case SpeciesCat:
		return "Chat"
	case SpeciesDog:
		return "Chien"
	case SpeciesReptile:
		return "Reptile"
	case SpeciesRodent:
		return "Rongeur"
	default:
		return string(s)
	}
}

// Sex of an animal.
type Sex string

const (
	SexFemale Sex = "FEMALE"
	SexMale   Sex = "MALE"
)

// Sexes lists every sex in display order.
var Sexes = []Sex{SexFemale, SexMale}

// Label returns the French display label.
func (s Sex) Label() string {
	switch s {
	case SexFemale:
		return "Femelle"
	case SexMale:
		return "Mâle"
	default:
		return string(s)
	}
}

// Animal is one row of the animal list.
type Animal struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Alias      *string    `json:"alias,omitempty"`
	Species    Species    `json:"species"`
	Sex        Sex        `json:"sex"`
	Status     Status     `json:"status"`
	Birthdate  time.Time  `json:"birthdate"`
	PickUpDate time.Time  `json:"pickUpDate"`
	ManagerID  *uuid.UUID `json:"managerId,omitempty"`
	Manager    *string    `json:"manager,omitempty"`
	AvatarURL  string     `json:"avatarUrl"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// DisplayName returns the name followed by the alias when there is one.
func (a Animal) DisplayName() string {
	if a.Alias == nil || *a.Alias == "" {
		return a.Name
	}
	return a.Name + " (" + *a.Alias + ")"
}

// Page holds one page of results and the total match count.
type Page struct {
	Animals []Animal `json:"animals"`
	Total   int      `json:"total"`
}
