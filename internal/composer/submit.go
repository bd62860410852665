package composer

import (
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PayloadLine is a draft line frozen at submission time with its
// committed quantity.
type PayloadLine struct {
	ItemID    string          `validate:"required"`
	Name      string          `validate:"required"`
	Kind      enums.ItemKind  `validate:"required"`
	Quantity  int             `validate:"min=1"`
	UnitPrice decimal.Decimal
}

// Payload is the snapshot handed to the ticket-submission collaborator.
type Payload struct {
	Customer string
	Contact  string
	Vehicle  string
	Notes    string
	StaffID  string        `validate:"required"`
	Lines    []PayloadLine `validate:"min=1,dive"`
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Net      decimal.Decimal
}

var validate = validator.New()

// BeginSubmit freezes the draft into a payload and marks a submission
// in flight. It fails without side effects when the draft has no lines
// or another submission is still pending; the in-flight flag is what
// keeps a double keypress from creating duplicate tickets.
func (c *Composer) BeginSubmit() (*Payload, error) {
	if c.submitting {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "envio em andamento, aguarde")
	}
	if len(c.lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adicione pelo menos um item")
	}

	for i := range c.lines {
		c.CommitQuantity(c.lines[i].ItemID)
	}
	c.CommitDiscount()

	payload := &Payload{
		Customer: c.Customer,
		Contact:  c.Contact,
		Vehicle:  c.Vehicle,
		Notes:    c.Notes,
		StaffID:  c.StaffID,
		Lines:    make([]PayloadLine, 0, len(c.lines)),
		Gross:    c.GrossTotal(),
		Discount: c.discount(),
		Net:      c.NetTotal(),
	}
	for _, line := range c.lines {
		payload.Lines = append(payload.Lines, PayloadLine{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Kind:      line.Kind,
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice,
		})
	}

	if err := validate.Struct(payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "comanda inválida")
	}

	c.submitting = true
	return payload, nil
}

// FinishSubmit records the persisted summary and clears the draft.
// The staff identity is the only field that survives.
func (c *Composer) FinishSubmit(summary Summary) {
	staffID, staffName := c.StaffID, c.StaffName
	*c = Composer{
		StaffID:   staffID,
		StaffName: staffName,
		phase:     PhaseSubmitted,
		summary:   &summary,
	}
}

// FailSubmit releases the in-flight flag and leaves the draft intact
// so the user can retry without retyping anything.
func (c *Composer) FailSubmit() {
	c.submitting = false
}
