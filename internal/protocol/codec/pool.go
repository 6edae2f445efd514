package codec

import (
	"sync"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/hilo-trainer/internal/protocol"
)

// Message pools for reducing GC pressure
var (
	messagePool = sync.Pool{
		New: func() any {
			return &protocol.Message{}
		},
	}

	envelopePool = sync.Pool{
		New: func() any {
			return &structpb.Struct{}
		},
	}
)

// GetMessage retrieves a Message from the pool
func GetMessage() *protocol.Message {
	return messagePool.Get().(*protocol.Message)
}

// PutMessage returns a Message to the pool
// The message fields are reset to prevent memory leaks
func PutMessage(msg *protocol.Message) {
	if msg == nil {
		return
	}
	msg.Type = ""
	msg.Payload = nil
	messagePool.Put(msg)
}

// GetEnvelope retrieves a protobuf envelope from the pool
func GetEnvelope() *structpb.Struct {
	return envelopePool.Get().(*structpb.Struct)
}

// PutEnvelope returns an envelope to the pool
func PutEnvelope(env *structpb.Struct) {
	if env == nil {
		return
	}
	env.Reset()
	envelopePool.Put(env)
}
