package dto

import "robinrocks-be/pkg/advisor"

type DocumentTypeResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type OpenDocumentRequest struct {
	Type string `json:"type" validate:"required,oneof=rental sales services"`
}

type DocumentSessionResponse struct {
	Id       string            `json:"id"`
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Form     *RentalAgreement  `json:"form,omitempty"`
	Messages []advisor.Message `json:"messages"`
	Typing   bool              `json:"typing"`
}

// RentalAgreement is the huurovereenkomst form. Property and tenancy type
// are the only required fields.
type RentalAgreement struct {
	Property             string `json:"property" validate:"required"`
	TenancyType          string `json:"tenancyType" validate:"required,oneof=office shop"`
	RentalPeriod         string `json:"rentalPeriod"`
	CommencementDate     string `json:"commencementDate"`
	RentalDiscount       bool   `json:"rentalDiscount"`
	FirstRentalPayment   string `json:"firstRentalPayment"`
	RenewalPeriod        string `json:"renewalPeriod"`
	NoticePeriod         string `json:"noticePeriod"`
	InitialRent          string `json:"initialRent"`
	VatOnRent            bool   `json:"vatOnRent"`
	ServiceCharges       bool   `json:"serviceCharges"`
	ServiceChargesAmount string `json:"serviceChargesAmount" validate:"required_if=ServiceCharges true"`
	PaymentTerm          string `json:"paymentTerm"`
	Indexation           string `json:"indexation"`
	SecurityDeposit      string `json:"securityDeposit"`
	AdditionalAgreements string `json:"additionalAgreements"`
}

type DraftResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
