package services

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends reminders through the Twilio messaging API.
type TwilioSender struct {
	client         *twilio.RestClient
	phoneNumber    string
	whatsAppNumber string
}

func NewTwilioSender(accountSID, authToken, phoneNumber, whatsAppNumber string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		phoneNumber:    phoneNumber,
		whatsAppNumber: whatsAppNumber,
	}
}

// Send ignores ctx; the Twilio client has no per-request context support.
func (t *TwilioSender) Send(_ context.Context, channel, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)

	if channel == ChannelWhatsApp {
		if t.whatsAppNumber == "" {
			return "", errors.New("no WhatsApp sender number configured")
		}
		params.SetFrom("whatsapp:" + t.whatsAppNumber)
	} else {
		if t.phoneNumber == "" {
			return "", errors.New("no SMS sender number configured")
		}
		params.SetFrom(t.phoneNumber)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
