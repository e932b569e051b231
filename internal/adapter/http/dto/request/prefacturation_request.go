package request

import (
	"strings"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/usecase"
)

type CalculationRequest struct {
	BasePrice        float64 `json:"base_price" binding:"gte=0"`
	DistancePrice    float64 `json:"distance_price" binding:"gte=0"`
	OptionsPrice     float64 `json:"options_price" binding:"gte=0"`
	WaitingTimePrice float64 `json:"waiting_time_price" binding:"gte=0"`
	Penalties        float64 `json:"penalties"`
	TotalHT          float64 `json:"total_ht" binding:"gte=0"`
	TVA              float64 `json:"tva" binding:"gte=0,lte=1"`
	TotalTTC         float64 `json:"total_ttc" binding:"gte=0"`

	DistanceKm     *float64 `json:"distance_km" binding:"omitempty,gte=0"`
	Pallets        *float64 `json:"pallets" binding:"omitempty,gte=0"`
	WaitingMinutes *float64 `json:"waiting_minutes" binding:"omitempty,gte=0"`
	Volume         *float64 `json:"volume" binding:"omitempty,gte=0"`
}

// GeneratePrefacturationRequest is sent by the order service once an order is delivered.
// Totals may be left at zero, in which case they are computed from the components.
type GeneratePrefacturationRequest struct {
	OrderID     string             `json:"order_id" binding:"required,notblank"`
	CarrierID   string             `json:"carrier_id" binding:"required,notblank"`
	CarrierName string             `json:"carrier_name"`
	ClientID    string             `json:"client_id" binding:"required,notblank"`
	ClientName  string             `json:"client_name"`
	Calculation CalculationRequest `json:"calculation"`
}

func (r GeneratePrefacturationRequest) ToInput(actor string) usecase.GenerateInput {
	c := r.Calculation
	return usecase.GenerateInput{
		OrderID:     strings.TrimSpace(r.OrderID),
		CarrierID:   strings.TrimSpace(r.CarrierID),
		CarrierName: strings.TrimSpace(r.CarrierName),
		ClientID:    strings.TrimSpace(r.ClientID),
		ClientName:  strings.TrimSpace(r.ClientName),
		Calculation: entities.Calculation{
			BasePrice:        c.BasePrice,
			DistancePrice:    c.DistancePrice,
			OptionsPrice:     c.OptionsPrice,
			WaitingTimePrice: c.WaitingTimePrice,
			Penalties:        c.Penalties,
			TotalHT:          c.TotalHT,
			TVA:              c.TVA,
			TotalTTC:         c.TotalTTC,
			DistanceKm:       c.DistanceKm,
			Pallets:          c.Pallets,
			WaitingMinutes:   c.WaitingMinutes,
			Volume:           c.Volume,
		},
		Actor: actor,
	}
}

// DeclaredRequest holds the values read from the carrier invoice (OCR or typed).
type DeclaredRequest struct {
	TotalHT        *float64 `json:"total_ht" binding:"omitempty,gte=0"`
	DistanceKm     *float64 `json:"distance_km" binding:"omitempty,gte=0"`
	OptionsPrice   *float64 `json:"options_price" binding:"omitempty,gte=0"`
	Pallets        *float64 `json:"pallets" binding:"omitempty,gte=0"`
	WaitingMinutes *float64 `json:"waiting_minutes" binding:"omitempty,gte=0"`
	Volume         *float64 `json:"volume" binding:"omitempty,gte=0"`
}

type AttachInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required,notblank"`
	InvoiceDate   *time.Time      `json:"invoice_date"`
	TotalHT       float64         `json:"total_ht" binding:"gte=0"`
	TVA           float64         `json:"tva" binding:"gte=0"`
	TotalTTC      float64         `json:"total_ttc" binding:"gte=0"`
	DocumentURL   string          `json:"document_url" binding:"omitempty,url"`
	MatchScore    float64         `json:"match_score" binding:"gte=0,lte=100"`
	Declared      DeclaredRequest `json:"declared"`
}

// ToEntity builds the invoice. When the OCR did not report a declared total,
// the invoice total is compared instead.
func (r AttachInvoiceRequest) ToEntity() entities.CarrierInvoice {
	declared := entities.DeclaredValues{
		TotalHT:        r.Declared.TotalHT,
		DistanceKm:     r.Declared.DistanceKm,
		OptionsPrice:   r.Declared.OptionsPrice,
		Pallets:        r.Declared.Pallets,
		WaitingMinutes: r.Declared.WaitingMinutes,
		Volume:         r.Declared.Volume,
	}
	if declared.TotalHT == nil && r.TotalHT > 0 {
		total := r.TotalHT
		declared.TotalHT = &total
	}
	return entities.CarrierInvoice{
		InvoiceNumber: strings.TrimSpace(r.InvoiceNumber),
		InvoiceDate:   r.InvoiceDate,
		TotalHT:       r.TotalHT,
		TVA:           r.TVA,
		TotalTTC:      r.TotalTTC,
		DocumentURL:   r.DocumentURL,
		MatchScore:    r.MatchScore,
		Declared:      declared,
	}
}

type ExportRequest struct {
	ExportRef string `json:"export_ref" binding:"required,notblank"`
}
