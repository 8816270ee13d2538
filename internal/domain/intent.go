package domain

type IntentName string

const (
	IntentBookHotel IntentName = "BookHotel"
	IntentBookCar   IntentName = "BookCar"
	IntentRemote    IntentName = "Remote"
	IntentTurn      IntentName = "Turn"
	IntentWatch     IntentName = "Watch"
)

type InvocationSource string

const (
	DialogCodeHook      InvocationSource = "DialogCodeHook"
	FulfillmentCodeHook InvocationSource = "FulfillmentCodeHook"
)

type ConfirmationStatus string

const (
	ConfirmationNone      ConfirmationStatus = "None"
	ConfirmationConfirmed ConfirmationStatus = "Confirmed"
	ConfirmationDenied    ConfirmationStatus = "Denied"
)

type DialogActionType string

const (
	ActionElicitSlot DialogActionType = "ElicitSlot"
	ActionDelegate   DialogActionType = "Delegate"
	ActionClose      DialogActionType = "Close"
)

type FulfillmentState string

const (
	Fulfilled FulfillmentState = "Fulfilled"
	Failed    FulfillmentState = "Failed"
)

const ContentTypePlainText = "PlainText"

// Session attribute keys owned by the handlers. Every other key is passed
// through untouched.
const (
	AttrCurrentReservation       = "currentReservation"
	AttrCurrentReservationPrice  = "currentReservationPrice"
	AttrLastConfirmedReservation = "lastConfirmedReservation"
)
