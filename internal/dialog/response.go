// Package dialog builds the dialog-control directives returned to the bot
// platform.
package dialog

import "lexhook/internal/domain"

func PlainText(content string) *domain.Message {
	return &domain.Message{ContentType: domain.ContentTypePlainText, Content: content}
}

// ElicitSlot asks the platform to prompt the user for slotToElicit.
func ElicitSlot(attrs domain.SessionAttributes, intent domain.IntentName, slots domain.Slots, slotToElicit string, msg *domain.Message) domain.Response {
	return domain.Response{
		SessionAttributes: attrs,
		DialogAction: domain.DialogAction{
			Type:         domain.ActionElicitSlot,
			IntentName:   intent,
			Slots:        slots,
			SlotToElicit: slotToElicit,
			Message:      msg,
		},
	}
}

// Delegate hands slot filling and confirmation back to the platform.
func Delegate(attrs domain.SessionAttributes, slots domain.Slots) domain.Response {
	return domain.Response{
		SessionAttributes: attrs,
		DialogAction: domain.DialogAction{
			Type:  domain.ActionDelegate,
			Slots: slots,
		},
	}
}

func Close(attrs domain.SessionAttributes, state domain.FulfillmentState, msg *domain.Message) domain.Response {
	return domain.Response{
		SessionAttributes: attrs,
		DialogAction: domain.DialogAction{
			Type:             domain.ActionClose,
			FulfillmentState: state,
			Message:          msg,
		},
	}
}

func Valid() domain.ValidationResult {
	return domain.ValidationResult{IsValid: true}
}

func Invalid(slot, content string) domain.ValidationResult {
	return domain.ValidationResult{
		IsValid:      false,
		ViolatedSlot: slot,
		Message:      PlainText(content),
	}
}
