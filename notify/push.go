package notify

import (
	"context"
	"os"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/sokoni-store/sokoni-api/models"
)

// PushSender delivers one encrypted payload to one subscription and reports
// the transport status code. 404/410 mean the endpoint is gone and the
// caller should drop the subscription.
type PushSender interface {
	Send(ctx context.Context, sub models.PushSubscription, payload []byte) (int, error)
}

type WebPushSender struct {
	publicKey  string
	privateKey string
	subscriber string
}

func NewWebPushSender() *WebPushSender {
	return &WebPushSender{
		publicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		privateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		subscriber: os.Getenv("VAPID_SUBSCRIBER"),
	}
}

func (s *WebPushSender) PublicKey() string {
	return s.publicKey
}

func (s *WebPushSender) Send(ctx context.Context, sub models.PushSubscription, payload []byte) (int, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
