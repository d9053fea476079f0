package mq

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Subscriber 介面定義了任何可被訂閱和取消訂閱的服務所需的方法。
// `M` 代表其訂閱的訊息型別。
type Subscriber[M any] interface {
	Subscribe(topic string) (uuid.UUID, <-chan M, error)
	DeSubscribe(id uuid.UUID) error
}

// SubscribeProcessor subscribes service to topic and forwards transformed
// messages to outputStream until ctx is done or the input closes.
// outputStream is closed on exit.
func SubscribeProcessor[S Subscriber[M], M any, O any](
	ctx context.Context,
	topic string,
	service S,
	transformFunc func(msg M) (O, bool, error),
	outputStream chan<- O,
) {
	go func() {
		uid, inputCh, err := service.Subscribe(topic)
		if err != nil {
			log.Printf("Error subscribing to %s: %v", topic, err)
			close(outputStream)
			return
		}

		defer func() {
			if err := service.DeSubscribe(uid); err != nil {
				log.Printf("Error de-subscribing %s: %v", uid, err)
			}
			close(outputStream)
		}()

		for {
			select {
			case msg, ok := <-inputCh:
				if !ok {
					// parent close channel
					return
				}

				output, skip, err := transformFunc(msg)
				if err != nil || skip {
					continue
				}

				select {
				case outputStream <- output:
				case <-ctx.Done():
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}
