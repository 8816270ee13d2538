package intents

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexhook/internal/domain"
)

func TestRemoteDialogValidActionDelegates(t *testing.T) {
	d := newTestDispatcher(t, &fakePublisher{}, nil, nil)

	resp, err := d.Dispatch(context.Background(), request(domain.IntentRemote, domain.DialogCodeHook, domain.Slots{"Action": s("next")}, nil))
	require.NoError(t, err)

	assert.Equal(t, domain.ActionDelegate, resp.DialogAction.Type)
	if diff := cmp.Diff(domain.Slots{"Action": s("next")}, resp.DialogAction.Slots); diff != "" {
		t.Fatalf("delegate slots changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, `{"ReservationType":"Remote","Action":"next"}`, resp.SessionAttributes[domain.AttrCurrentReservation])
}

func TestRemoteDialogInvalidActionElicits(t *testing.T) {
	d := newTestDispatcher(t, &fakePublisher{}, nil, nil)

	resp, err := d.Dispatch(context.Background(), request(domain.IntentRemote, domain.DialogCodeHook, domain.Slots{"Action": s("sideways")}, nil))
	require.NoError(t, err)

	action := resp.DialogAction
	assert.Equal(t, domain.ActionElicitSlot, action.Type)
	assert.Equal(t, "Action", action.SlotToElicit)
	assert.Equal(t, domain.IntentRemote, action.IntentName)
	require.Contains(t, action.Slots, "Action")
	assert.Nil(t, action.Slots["Action"])
	require.NotNil(t, action.Message)
	assert.Contains(t, action.Message.Content, "sideways")
	assert.Equal(t, domain.ContentTypePlainText, action.Message.ContentType)
}

func TestRemoteFulfillmentPublishesCommand(t *testing.T) {
	pub := &fakePublisher{}
	journal := &fakeJournal{}
	d := newTestDispatcher(t, pub, nil, journal)
	attrs := domain.SessionAttributes{domain.AttrCurrentReservation: "stale", "keep": "me"}

	resp, err := d.Dispatch(context.Background(), request(domain.IntentRemote, domain.FulfillmentCodeHook, domain.Slots{"Action": s("louder")}, attrs))
	require.NoError(t, err)

	assert.Equal(t, domain.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, domain.Fulfilled, resp.DialogAction.FulfillmentState)
	assert.Equal(t, "Done Action louder", resp.DialogAction.Message.Content)

	assert.NotContains(t, resp.SessionAttributes, domain.AttrCurrentReservation)
	assert.Equal(t, `{"ReservationType":"Remote","Action":"louder"}`, resp.SessionAttributes[domain.AttrLastConfirmedReservation])
	assert.Equal(t, "me", resp.SessionAttributes["keep"])

	require.Len(t, pub.commands, 1)
	assert.Equal(t, domain.DeviceCommand{Method: "Remote", Action: "louder"}, pub.commands[0])

	require.Len(t, journal.records, 1)
	assert.Equal(t, domain.IntentRemote, journal.records[0].Intent)
	assert.Equal(t, "Done Action louder", journal.records[0].Message)
}

func TestRemoteFulfillmentPublishFailurePropagates(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	d := newTestDispatcher(t, pub, nil, nil)

	_, err := d.Dispatch(context.Background(), request(domain.IntentRemote, domain.FulfillmentCodeHook, domain.Slots{"Action": s("power")}, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestRemoteFulfillmentWithoutActionElicits(t *testing.T) {
	pub := &fakePublisher{}
	d := newTestDispatcher(t, pub, nil, nil)

	resp, err := d.Dispatch(context.Background(), request(domain.IntentRemote, domain.FulfillmentCodeHook, domain.Slots{"Action": nil}, nil))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionElicitSlot, resp.DialogAction.Type)
	assert.Equal(t, "Action", resp.DialogAction.SlotToElicit)
	assert.Empty(t, pub.commands)
}

func TestJournalFailureDoesNotFailTurn(t *testing.T) {
	d := newTestDispatcher(t, &fakePublisher{}, nil, &fakeJournal{err: errors.New("db gone")})

	resp, err := d.Dispatch(context.Background(), request(domain.IntentRemote, domain.FulfillmentCodeHook, domain.Slots{"Action": s("back")}, nil))
	require.NoError(t, err)
	assert.Equal(t, domain.Fulfilled, resp.DialogAction.FulfillmentState)
}

func TestTurnChannel(t *testing.T) {
	tests := []struct {
		name        string
		source      domain.InvocationSource
		channel     *string
		wantType    domain.DialogActionType
		wantMessage string
		wantPublish bool
	}{
		{name: "dialog numeric", source: domain.DialogCodeHook, channel: s("12"), wantType: domain.ActionDelegate},
		{name: "dialog missing", source: domain.DialogCodeHook, channel: nil, wantType: domain.ActionDelegate},
		{name: "dialog words", source: domain.DialogCodeHook, channel: s("twelve"), wantType: domain.ActionElicitSlot, wantMessage: "twelve"},
		{name: "fulfill", source: domain.FulfillmentCodeHook, channel: s("12"), wantType: domain.ActionClose, wantMessage: "Done channel 12", wantPublish: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			d := newTestDispatcher(t, pub, nil, nil)

			resp, err := d.Dispatch(context.Background(), request(domain.IntentTurn, tt.source, domain.Slots{"ChannelNumber": tt.channel}, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, resp.DialogAction.Type)
			if tt.wantMessage != "" {
				require.NotNil(t, resp.DialogAction.Message)
				assert.Contains(t, resp.DialogAction.Message.Content, tt.wantMessage)
			}
			if tt.wantPublish {
				require.Len(t, pub.commands, 1)
				assert.Equal(t, domain.DeviceCommand{Method: "Turn", ChannelNumber: "12"}, pub.commands[0])
			} else {
				assert.Empty(t, pub.commands)
			}
		})
	}
}
