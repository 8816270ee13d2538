package domain

import (
	"encoding/json"
	"time"
)

// Lex code hook payloads

type IntentRequest struct {
	CurrentIntent     CurrentIntent     `json:"currentIntent"`
	Bot               Bot               `json:"bot"`
	UserID            string            `json:"userId"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
	InvocationSource  InvocationSource  `json:"invocationSource"`
	OutputDialogMode  string            `json:"outputDialogMode,omitempty"`
	MessageVersion    string            `json:"messageVersion,omitempty"`
	SessionAttributes SessionAttributes `json:"sessionAttributes"`
	RequestAttributes map[string]string `json:"requestAttributes,omitempty"`
}

type CurrentIntent struct {
	Name               IntentName         `json:"name"`
	Slots              Slots              `json:"slots"`
	ConfirmationStatus ConfirmationStatus `json:"confirmationStatus,omitempty"`
}

type Bot struct {
	Name    string `json:"name"`
	Alias   string `json:"alias,omitempty"`
	Version string `json:"version,omitempty"`
}

type Response struct {
	SessionAttributes SessionAttributes `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}

// DialogAction is the directive returned to the platform. Type selects which
// of the remaining fields are meaningful.
type DialogAction struct {
	Type             DialogActionType `json:"type"`
	IntentName       IntentName       `json:"intentName,omitempty"`
	Slots            Slots            `json:"slots,omitempty"`
	SlotToElicit     string           `json:"slotToElicit,omitempty"`
	FulfillmentState FulfillmentState `json:"fulfillmentState,omitempty"`
	Message          *Message         `json:"message,omitempty"`
}

// MarshalJSON always writes slots for ElicitSlot and Delegate, as an empty
// object when there are none, and never for Close.
func (a DialogAction) MarshalJSON() ([]byte, error) {
	type wireAction struct {
		Type             DialogActionType `json:"type"`
		IntentName       IntentName       `json:"intentName,omitempty"`
		Slots            *Slots           `json:"slots,omitempty"`
		SlotToElicit     string           `json:"slotToElicit,omitempty"`
		FulfillmentState FulfillmentState `json:"fulfillmentState,omitempty"`
		Message          *Message         `json:"message,omitempty"`
	}
	w := wireAction{
		Type:             a.Type,
		IntentName:       a.IntentName,
		SlotToElicit:     a.SlotToElicit,
		FulfillmentState: a.FulfillmentState,
		Message:          a.Message,
	}
	if a.Type != ActionClose {
		slots := a.Slots
		if slots == nil {
			slots = Slots{}
		}
		w.Slots = &slots
	}
	return json.Marshal(w)
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type ValidationResult struct {
	IsValid      bool     `json:"isValid"`
	ViolatedSlot string   `json:"violatedSlot,omitempty"`
	Message      *Message `json:"message,omitempty"`
}

// MQTT payloads

type DeviceCommand struct {
	Method        string `json:"Method"`
	Action        string `json:"Action,omitempty"`
	ChannelNumber string `json:"ChannelNumber,omitempty"`
}

// Collaborator payloads

// ShowLookupResult is the outcome of resolving a show name to a channel.
type ShowLookupResult struct {
	Channel string
	Found   bool
}

type FulfillmentRecord struct {
	InvocationID string
	UserID       string
	BotName      string
	Intent       IntentName
	Reservation  string
	Price        string
	Message      string
	FulfilledAt  time.Time
}
