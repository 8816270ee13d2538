package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLexctl(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"LEXHOOK_CONFIG", "MQTT_BROKER_URL", "LOOKUP_URL", "DB_DSN", "TIMEZONE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPriceHotel(t *testing.T) {
	out, err := runLexctl(t, "", "price", "hotel", "--location", "Chicago", "--nights", "2", "--room", "king")
	require.NoError(t, err)
	assert.Equal(t, "480.00\n", out)
}

func TestPriceCar(t *testing.T) {
	out, err := runLexctl(t, "", "price", "car", "--city", "Boston", "--days", "3", "--age", "30", "--type", "midsize")
	require.NoError(t, err)
	assert.Equal(t, "837.00\n", out)
}

func TestPriceRejectsOutOfRange(t *testing.T) {
	_, err := runLexctl(t, "", "price", "hotel", "--location", "Chicago", "--nights", "31")
	require.Error(t, err)

	_, err = runLexctl(t, "", "price", "car", "--city", "Boston", "--age", "17")
	require.Error(t, err)
}

func TestInvokeFromStdin(t *testing.T) {
	event := `{
		"currentIntent": {"name": "Remote", "slots": {"Action": "next"}},
		"userId": "user-1",
		"invocationSource": "FulfillmentCodeHook",
		"sessionAttributes": {}
	}`
	out, err := runLexctl(t, event, "invoke", "--event", "-")
	require.NoError(t, err)

	var resp struct {
		DialogAction struct {
			Type             string `json:"type"`
			FulfillmentState string `json:"fulfillmentState"`
			Message          struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"dialogAction"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Close", resp.DialogAction.Type)
	assert.Equal(t, "Fulfilled", resp.DialogAction.FulfillmentState)
	assert.Equal(t, "Done Action next", resp.DialogAction.Message.Content)
}

func TestInvokeUnsupportedIntent(t *testing.T) {
	_, err := runLexctl(t, `{"currentIntent": {"name": "OrderPizza"}, "invocationSource": "DialogCodeHook"}`, "invoke", "--event", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OrderPizza")
}

func TestInvokePublishNeedsBroker(t *testing.T) {
	_, err := runLexctl(t, `{"currentIntent": {"name": "Remote"}}`, "invoke", "--event", "-", "--publish")
	require.Error(t, err)
}
