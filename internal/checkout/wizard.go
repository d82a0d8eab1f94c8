package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/store"
)

const wizardSchemaVersion = 1

// Wizard steps, in order. A step is only reachable once every earlier
// step has been submitted with valid values; going back is always
// allowed.
const (
	StepIdentity = 1
	StepShipping = 2
	StepPayment  = 3
)

// FixedCountry is the only shipping destination; the field is not
// editable.
const FixedCountry = "Tunisie"

var ErrStepOrder = errors.New("checkout step not reachable yet")

// Identity is step 1. Presence is the only validation, matching the
// storefront's behavior.
type Identity struct {
	Name  string `json:"nom" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"telephone" validate:"required"`
}

// Shipping is step 2. Country is fixed and overwritten on submit.
type Shipping struct {
	Street     string `json:"rue" validate:"required"`
	City       string `json:"ville" validate:"required"`
	PostalCode string `json:"codePostal" validate:"required"`
	Country    string `json:"pays"`
}

type State struct {
	Step     int      `json:"step"`
	Identity Identity `json:"identity"`
	Shipping Shipping `json:"shipping"`
}

// Wizard persists the per-session checkout state between requests.
type Wizard struct {
	records  store.Records
	validate *validator.Validate
}

func NewWizard(records store.Records) *Wizard {
	return &Wizard{records: records, validate: validator.New()}
}

func (w *Wizard) State(ctx context.Context, sessionID string) (State, error) {
	data, err := store.LoadVersioned(ctx, w.records, sessionID, store.KindCheckout, wizardSchemaVersion)
	if err == store.ErrNotFound {
		return State{Step: StepIdentity}, nil
	}
	if err != nil {
		return State{}, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		_ = w.records.Delete(ctx, sessionID, store.KindCheckout)
		return State{Step: StepIdentity}, nil
	}
	if state.Step < StepIdentity {
		state.Step = StepIdentity
	}
	return state, nil
}

// SubmitIdentity validates step 1 and advances to shipping. A
// validation failure leaves the stored state untouched.
func (w *Wizard) SubmitIdentity(ctx context.Context, sessionID string, identity Identity) (State, error) {
	identity.Name = strings.TrimSpace(identity.Name)
	identity.Email = strings.TrimSpace(identity.Email)
	identity.Phone = strings.TrimSpace(identity.Phone)

	if err := w.validate.Struct(identity); err != nil {
		return State{}, fmt.Errorf("all identity fields are required: %w", err)
	}

	state, err := w.State(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	state.Identity = identity
	state.Step = StepShipping
	if err := w.save(ctx, sessionID, state); err != nil {
		return State{}, err
	}
	return state, nil
}

// SubmitShipping validates step 2 and advances to payment. It rejects
// sessions that have not completed step 1.
func (w *Wizard) SubmitShipping(ctx context.Context, sessionID string, shipping Shipping) (State, error) {
	state, err := w.State(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	if state.Step < StepShipping {
		return State{}, ErrStepOrder
	}

	shipping.Street = strings.TrimSpace(shipping.Street)
	shipping.City = strings.TrimSpace(shipping.City)
	shipping.PostalCode = strings.TrimSpace(shipping.PostalCode)
	shipping.Country = FixedCountry

	if err := w.validate.Struct(shipping); err != nil {
		return State{}, fmt.Errorf("all shipping fields are required: %w", err)
	}

	state.Shipping = shipping
	state.Step = StepPayment
	if err := w.save(ctx, sessionID, state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Back moves one step backwards, never below step 1.
func (w *Wizard) Back(ctx context.Context, sessionID string) (State, error) {
	state, err := w.State(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	if state.Step > StepIdentity {
		state.Step--
		if err := w.save(ctx, sessionID, state); err != nil {
			return State{}, err
		}
	}
	return state, nil
}

// Reset discards the wizard state after a completed order.
func (w *Wizard) Reset(ctx context.Context, sessionID string) error {
	return w.records.Delete(ctx, sessionID, store.KindCheckout)
}

func (w *Wizard) save(ctx context.Context, sessionID string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return w.records.Save(ctx, sessionID, store.KindCheckout, wizardSchemaVersion, data)
}
