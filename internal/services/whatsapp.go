package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"church-admin/config"
	"church-admin/internal/utils"

	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"
)

const (
	WhatsAppStatusConnected    = "connected"
	WhatsAppStatusConnecting   = "connecting"
	WhatsAppStatusDisconnected = "disconnected"
	WhatsAppStatusDisabled     = "disabled"
)

// WhatsAppService holds the single whatsmeow session for the church account.
// Its session store lives in a sqlite file under the configured session
// directory; login happens by scanning the QR code exposed over HTTP.
type WhatsAppService struct {
	cfg    *config.WhatsAppConfig
	client *whatsmeow.Client

	mutex        sync.RWMutex
	connected    bool
	qrCodeBase64 string
}

func NewWhatsAppService(cfg *config.WhatsAppConfig) *WhatsAppService {
	return &WhatsAppService{cfg: cfg}
}

func (s *WhatsAppService) sessionPath() string {
	return filepath.Join(s.cfg.SessionDir, "whatsapp.db")
}

func (s *WhatsAppService) Connect() error {
	if !s.cfg.Enabled {
		return fmt.Errorf("whatsapp is disabled")
	}

	store.DeviceProps.Os = proto.String("ChurchAdmin")
	store.DeviceProps.PlatformType = waProto.DeviceProps_DESKTOP.Enum()

	dbPath := s.sessionPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("error creating session directory: %v", err)
	}

	clientLog := waLog.Stdout("Client", "INFO", false)

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)", dbPath)
	deviceStore, err := sqlstore.New("sqlite", dsn, nil)
	if err != nil {
		return fmt.Errorf("error creating device store: %v", err)
	}

	device, err := deviceStore.GetFirstDevice()
	if err != nil {
		return fmt.Errorf("error loading device: %v", err)
	}

	client := whatsmeow.NewClient(device, clientLog)
	s.client = client
	s.client.AddEventHandler(s.eventHandler)
	client.Store.Platform = "ChurchAdmin"

	if client.Store.ID == nil {
		// Not logged in yet: surface the QR code for pairing.
		qrChan, _ := client.GetQRChannel(context.Background())
		go func() {
			for evt := range qrChan {
				if evt.Event == "code" {
					s.saveQRCode(evt.Code)
				}
			}
		}()
	}

	if err := client.Connect(); err != nil {
		return fmt.Errorf("error connecting to whatsapp: %v", err)
	}
	return nil
}

func (s *WhatsAppService) saveQRCode(code string) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		utils.Log.Error("error encoding whatsapp qr code", zap.Error(err))
		return
	}

	s.mutex.Lock()
	s.qrCodeBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	s.mutex.Unlock()
}

// QRCode returns the latest pairing QR code as a base64 PNG data URI.
func (s *WhatsAppService) QRCode() (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.qrCodeBase64, s.qrCodeBase64 != ""
}

func (s *WhatsAppService) IsConnected() bool {
	s.mutex.RLock()
	connected := s.connected
	s.mutex.RUnlock()

	return s.client != nil && s.client.IsConnected() && s.client.IsLoggedIn() && connected
}

func (s *WhatsAppService) Status() string {
	if !s.cfg.Enabled {
		return WhatsAppStatusDisabled
	}
	if s.IsConnected() {
		return WhatsAppStatusConnected
	}
	if _, ok := s.QRCode(); ok {
		return WhatsAppStatusConnecting
	}
	return WhatsAppStatusDisconnected
}

func (s *WhatsAppService) setConnected(connected bool) {
	s.mutex.Lock()
	s.connected = connected
	if connected {
		s.qrCodeBase64 = ""
	}
	s.mutex.Unlock()
}

func (s *WhatsAppService) eventHandler(evt interface{}) {
	switch evt.(type) {
	case *events.Connected:
		utils.Log.Info("whatsapp connected")
		s.setConnected(true)
	case *events.Disconnected:
		utils.Log.Warn("whatsapp disconnected")
		s.setConnected(false)
	case *events.LoggedOut:
		utils.Log.Warn("whatsapp logged out")
		s.setConnected(false)
	}
}

// Name makes the service usable as a message provider in the dispatcher
// registry.
func (s *WhatsAppService) Name() string { return "whatsapp" }

// Send delivers one text message to one recipient.
func (s *WhatsAppService) Send(ctx context.Context, phone, message string) error {
	if !s.IsConnected() {
		return fmt.Errorf("whatsapp is not connected")
	}

	jid, err := parseJID(phone)
	if err != nil {
		return err
	}

	_, err = s.client.SendMessage(ctx, jid, &waProto.Message{
		Conversation: proto.String(message),
	})
	if err != nil {
		return fmt.Errorf("error sending whatsapp message to %s: %v", phone, err)
	}
	return nil
}

func (s *WhatsAppService) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
	s.setConnected(false)
}

func parseJID(phone string) (types.JID, error) {
	number := strings.TrimPrefix(phone, "+")
	if !strings.HasPrefix(phone, "+") {
		number = "27" + strings.TrimLeft(number, "0")
	}
	return types.ParseJID(number + "@s.whatsapp.net")
}
