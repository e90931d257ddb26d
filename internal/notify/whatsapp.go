package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
)

// WhatsApp is a Dispatcher that delivers invitations as WhatsApp text
// messages. The session is persisted in a sqlite store under dataDir; on
// first run the user pairs the account by scanning a QR code printed to
// the terminal.
type WhatsApp struct {
	client  *whatsmeow.Client
	baseURL string
}

// NewWhatsApp creates a WhatsApp dispatcher backed by a whatsmeow session
// store in dataDir. baseURL is the public address used to build the invite
// response link included in each message.
func NewWhatsApp(ctx context.Context, dataDir, baseURL string) (*WhatsApp, error) {
	container, err := sqlstore.New(ctx, "sqlite3",
		fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", dataDir), nil)
	if err != nil {
		return nil, fmt.Errorf("creating whatsapp session store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting whatsapp device: %w", err)
	}

	return &WhatsApp{
		client:  whatsmeow.NewClient(deviceStore, nil),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Connect connects to WhatsApp. If the device has never been paired, a QR
// code is printed to the terminal and Connect blocks until pairing
// completes or the QR channel closes.
func (w *WhatsApp) Connect(ctx context.Context) error {
	if w.client.Store.ID == nil {
		qrChan, _ := w.client.GetQRChannel(ctx)
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("connecting to whatsapp: %w", err)
		}
		for evt := range qrChan {
			if evt.Event == "code" {
				q, err := qrcode.New(evt.Code, qrcode.Medium)
				if err != nil {
					fmt.Printf("Pairing code: %s\n", evt.Code)
				} else {
					fmt.Println(q.ToSmallString(false))
				}
				fmt.Println("Scan the QR code with WhatsApp (Settings > Linked Devices) to pair.")
			} else {
				slog.Info("whatsapp login event", "event", evt.Event)
			}
		}
		return nil
	}

	if err := w.client.Connect(); err != nil {
		return fmt.Errorf("connecting to whatsapp: %w", err)
	}
	return nil
}

// Disconnect disconnects from WhatsApp.
func (w *WhatsApp) Disconnect() {
	w.client.Disconnect()
}

// Dispatch sends the invitation as a text message with a response link.
func (w *WhatsApp) Dispatch(ctx context.Context, inv Invitation) error {
	phone := normalizePhone(inv.Phone)

	resp, err := w.client.IsOnWhatsApp(ctx, []string{phone})
	if err != nil {
		return fmt.Errorf("verifying number on whatsapp: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return fmt.Errorf("number %s is not registered on whatsapp", phone)
	}
	jid := resp[0].JID

	message := fmt.Sprintf(
		"Hi %s! You are invited to %s on %s.\n\nRespond here: %s/api/invites/%d",
		inv.InviteeName, inv.EventTitle, inv.EventDate, w.baseURL, inv.InviteID,
	)

	if _, err := w.client.SendMessage(ctx, jid, &waE2E.Message{Conversation: &message}); err != nil {
		return fmt.Errorf("sending whatsapp message to %s: %w", jid.String(), err)
	}
	return nil
}

// normalizePhone strips formatting characters so the number can be resolved
// to a JID. Numbers are expected to carry a country code.
func normalizePhone(phone string) string {
	replacer := strings.NewReplacer("+", "", " ", "", "-", "", "(", "", ")", "")
	return replacer.Replace(phone)
}
