// Package exhibitors serves the back-office list of event exhibitors.
package exhibitors

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a field of activity of an exhibitor.
type Activity string

const (
	ActivityArtist       Activity = "ARTIST"
	ActivityAssociation  Activity = "ASSOCIATION"
	ActivityBehavior     Activity = "BEHAVIOR"
	ActivityCare         Activity = "CARE"
	ActivityCity         Activity = "CITY"
	ActivityDrawing      Activity = "DRAWING"
	ActivityEditing      Activity = "EDITING"
	ActivityEducation    Activity = "EDUCATION"
	ActivityFood         Activity = "FOOD"
	ActivityPhotographer Activity = "PHOTOGRAPHER"
	ActivityServices     Activity = "SERVICES"
	ActivityTraining     Activity = "TRAINING"
)

// Activities lists every activity in display order.
var Activities = []Activity{
	ActivityArtist,
	ActivityAssociation,
	ActivityBehavior,
	ActivityCare,
	ActivityCity,
	ActivityDrawing,
	ActivityEditing,
	ActivityEducation,
	ActivityFood,
	ActivityPhotographer,
	ActivityServices,
	ActivityTraining,
}

// Label returns the French display label.
func (a Activity) Label() string {
	switch a {
	case ActivityArtist:
		return "Artiste"
	case ActivityAssociation:
		return "Association"
	case ActivityBehavior:
		return "Comportement"
	case ActivityCare:
		return "Soins"
	case ActivityCity:
		return "Ville"
	case ActivityDrawing:
		return "Dessin"
	case ActivityEditing:
		return "Édition"
	case ActivityEducation:
		return "Éducation"
	case ActivityFood:
		return "Alimentation"
	case ActivityPhotographer:
		return "Photographe"
	case ActivityServices:
		return "Services"
	case ActivityTraining:
		return "Éducation canine"
	default:
		return string(a)
	}
}

// Target is an audience an exhibitor works with.
type Target string

const (
	TargetBirds    Target = "BIRDS"
	TargetCats     Target = "CATS"
	TargetDogs     Target = "DOGS"
	TargetEquines  Target = "EQUINES"
	TargetHumans   Target = "HUMANS"
	TargetNacs     Target = "NACS"
	TargetRodents  Target = "RODENTS"
	TargetWildlife Target = "WILDLIFE"
)

// Targets lists every target in display order.
var Targets = []Target{
	TargetBirds,
	TargetCats,
	TargetDogs,
	TargetEquines,
	TargetHumans,
	TargetNacs,
	TargetRodents,
	TargetWildlife,
}

// Label returns the French display label.
func (t Target) Label() string {
	switch t {
	case TargetBirds:
		return "Oiseaux"
	case TargetCats:
		return "Chats"
	case TargetDogs:
		return "Chiens"
	case TargetEquines:
		return "Équidés"
	case TargetHumans:
		return "Humains"
	case TargetNacs:
		return "NAC"
	case TargetRodents:
		return "Rongeurs"
	case TargetWildlife:
		return "Faune sauvage"
	default:
		return string(t)
	}
}

// DocumentStatus is the review state of an exhibitor's documents.
type DocumentStatus string

const (
	DocumentAwaitingValidation DocumentStatus = "AWAITING_VALIDATION"
	DocumentNotTouched         DocumentStatus = "NOT_TOUCHED"
	DocumentToModify           DocumentStatus = "TO_MODIFY"
	DocumentValidated          DocumentStatus = "VALIDATED"
)

// DocumentStatuses lists every document status in display order.
var DocumentStatuses = []DocumentStatus{
	DocumentAwaitingValidation,
	DocumentNotTouched,
	DocumentToModify,
	DocumentValidated,
}

// Label returns the French display label.
func (d DocumentStatus) Label() string {
	switch d {
	case DocumentAwaitingValidation:
		return "En attente de validation"
	case DocumentNotTouched:
		return "Non modifiés"
	case DocumentToModify:
		return "À modifier"
	case DocumentValidated:
		return "Validés"
	default:
		return string(d)
	}
}

// Payment is the payment state of an exhibitor's stand.
type Payment string

const (
	PaymentPaid    Payment = "PAID"
	PaymentNotPaid Payment = "NOT_PAID"
)

// Payments lists every payment state in display order.
var Payments = []Payment{PaymentPaid, PaymentNotPaid}

// Label returns the French display label.
func (p Payment) Label() string {
	switch p {
	case PaymentPaid:
		return "Payé"
	case PaymentNotPaid:
		return "Non payé"
	default:
		return string(p)
	}
}

// Visibility tells whether an exhibitor is shown on the public site.
type Visibility string

const (
	VisibilityVisible Visibility = "VISIBLE"
	VisibilityHidden  Visibility = "HIDDEN"
)

// Visibilities lists every visibility in display order.
var Visibilities = []Visibility{VisibilityVisible, VisibilityHidden}

// Label returns the French display label.
func (v Visibility) Label() string {
	switch v {
	case VisibilityVisible:
		return "Visible"
	case VisibilityHidden:
		return "Caché"
	default:
		return string(v)
	}
}

// Exhibitor is one row of the exhibitor list.
type Exhibitor struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Activities     []Activity     `json:"activities"`
	Targets        []Target       `json:"targets"`
	DocumentStatus DocumentStatus `json:"documentStatus"`
	IsPaid         bool           `json:"isPaid"`
	IsVisible      bool           `json:"isVisible"`
	LogoURL        string         `json:"logoUrl"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Payment returns the payment state of e.
func (e Exhibitor) Payment() Payment {
	if e.IsPaid {
		return PaymentPaid
	}
	return PaymentNotPaid
}

// Visibility returns the visibility of e.
func (e Exhibitor) Visibility() Visibility {
	if e.IsVisible {
		return VisibilityVisible
	}
	return VisibilityHidden
}

// Page holds one page of results and the total match count.
type Page struct {
	Exhibitors []Exhibitor `json:"exhibitors"`
	Total      int         `json:"total"`
}
