package wire

// Concrete method types for the subset of the AMQP method universe the
// channel actor's spec names explicitly. The classifier only knows the
// (class, method) pairs registered in method.go's init; exchange and queue
// methods are not registered there, so a type for one of them is
// classified as unknown (asynchronous, no content).

// --- channel class ---

type ChannelOpen struct{}

func (ChannelOpen) ClassID() ClassID    { return ClassChannel }
func (ChannelOpen) MethodID() MethodID  { return 10 }
func (ChannelOpen) MethodName() string  { return "channel.open" }

type ChannelOpenOk struct{}

func (ChannelOpenOk) ClassID() ClassID   { return ClassChannel }
func (ChannelOpenOk) MethodID() MethodID { return 11 }
func (ChannelOpenOk) MethodName() string { return "channel.open-ok" }

type ChannelFlow struct{ Active bool }

func (ChannelFlow) ClassID() ClassID   { return ClassChannel }
func (ChannelFlow) MethodID() MethodID { return 20 }
func (ChannelFlow) MethodName() string { return "channel.flow" }

type ChannelFlowOk struct{ Active bool }

func (ChannelFlowOk) ClassID() ClassID   { return ClassChannel }
func (ChannelFlowOk) MethodID() MethodID { return 21 }
func (ChannelFlowOk) MethodName() string { return "channel.flow-ok" }

type ChannelClose struct {
	ReplyCode uint16
	ReplyText string
	ClassId   uint16
	MethodId  uint16
}

func (ChannelClose) ClassID() ClassID   { return ClassChannel }
func (ChannelClose) MethodID() MethodID { return 40 }
func (ChannelClose) MethodName() string { return "channel.close" }

type ChannelCloseOk struct{}

func (ChannelCloseOk) ClassID() ClassID   { return ClassChannel }
func (ChannelCloseOk) MethodID() MethodID { return 41 }
func (ChannelCloseOk) MethodName() string { return "channel.close-ok" }

// --- basic class ---

type BasicQos struct {
	PrefetchSize  uint32
	PrefetchCount uint16
	Global        bool
}

func (BasicQos) ClassID() ClassID   { return ClassBasic }
func (BasicQos) MethodID() MethodID { return 10 }
func (BasicQos) MethodName() string { return "basic.qos" }

type BasicQosOk struct{}

func (BasicQosOk) ClassID() ClassID   { return ClassBasic }
func (BasicQosOk) MethodID() MethodID { return 11 }
func (BasicQosOk) MethodName() string { return "basic.qos-ok" }

type BasicConsume struct {
	Queue       string
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	NoWait      bool
	Args        Table
}

func (BasicConsume) ClassID() ClassID   { return ClassBasic }
func (BasicConsume) MethodID() MethodID { return 20 }
func (BasicConsume) MethodName() string { return "basic.consume" }

type BasicConsumeOk struct{ ConsumerTag string }

func (BasicConsumeOk) ClassID() ClassID   { return ClassBasic }
func (BasicConsumeOk) MethodID() MethodID { return 21 }
func (BasicConsumeOk) MethodName() string { return "basic.consume-ok" }

type BasicCancel struct {
	ConsumerTag string
	NoWait      bool
}

func (BasicCancel) ClassID() ClassID   { return ClassBasic }
func (BasicCancel) MethodID() MethodID { return 30 }
func (BasicCancel) MethodName() string { return "basic.cancel" }

type BasicCancelOk struct{ ConsumerTag string }

func (BasicCancelOk) ClassID() ClassID   { return ClassBasic }
func (BasicCancelOk) MethodID() MethodID { return 31 }
func (BasicCancelOk) MethodName() string { return "basic.cancel-ok" }

type BasicPublish struct {
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool
}

func (BasicPublish) ClassID() ClassID    { return ClassBasic }
func (BasicPublish) MethodID() MethodID  { return 40 }
func (BasicPublish) MethodName() string  { return "basic.publish" }
func (BasicPublish) HasContent() bool    { return true }

type BasicReturn struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
}

func (BasicReturn) ClassID() ClassID   { return ClassBasic }
func (BasicReturn) MethodID() MethodID { return 50 }
func (BasicReturn) MethodName() string { return "basic.return" }
func (BasicReturn) HasContent() bool   { return true }

type BasicDeliver struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

func (BasicDeliver) ClassID() ClassID   { return ClassBasic }
func (BasicDeliver) MethodID() MethodID { return 60 }
func (BasicDeliver) MethodName() string { return "basic.deliver" }
func (BasicDeliver) HasContent() bool   { return true }

type BasicGet struct {
	Queue string
	NoAck bool
}

func (BasicGet) ClassID() ClassID   { return ClassBasic }
func (BasicGet) MethodID() MethodID { return 70 }
func (BasicGet) MethodName() string { return "basic.get" }

type BasicGetOk struct {
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
}

func (BasicGetOk) ClassID() ClassID   { return ClassBasic }
func (BasicGetOk) MethodID() MethodID { return 71 }
func (BasicGetOk) MethodName() string { return "basic.get-ok" }
func (BasicGetOk) HasContent() bool   { return true }

type BasicGetEmpty struct{}

func (BasicGetEmpty) ClassID() ClassID   { return ClassBasic }
func (BasicGetEmpty) MethodID() MethodID { return 72 }
func (BasicGetEmpty) MethodName() string { return "basic.get-empty" }

type BasicAck struct {
	DeliveryTag uint64
	Multiple    bool
}

func (BasicAck) ClassID() ClassID   { return ClassBasic }
func (BasicAck) MethodID() MethodID { return 80 }
func (BasicAck) MethodName() string { return "basic.ack" }

type BasicReject struct {
	DeliveryTag uint64
	Requeue     bool
}

func (BasicReject) ClassID() ClassID   { return ClassBasic }
func (BasicReject) MethodID() MethodID { return 90 }
func (BasicReject) MethodName() string { return "basic.reject" }

type BasicNack struct {
	DeliveryTag uint64
	Multiple    bool
	Requeue     bool
}

func (BasicNack) ClassID() ClassID   { return ClassBasic }
func (BasicNack) MethodID() MethodID { return 120 }
func (BasicNack) MethodName() string { return "basic.nack" }

// --- confirm class ---

type ConfirmSelect struct{ NoWait bool }

func (ConfirmSelect) ClassID() ClassID   { return ClassConfirm }
func (ConfirmSelect) MethodID() MethodID { return 10 }
func (ConfirmSelect) MethodName() string { return "confirm.select" }

type ConfirmSelectOk struct{}

func (ConfirmSelectOk) ClassID() ClassID   { return ClassConfirm }
func (ConfirmSelectOk) MethodID() MethodID { return 11 }
func (ConfirmSelectOk) MethodName() string { return "confirm.select-ok" }

// HasContent reports whether m carries a Content frame, for methods that
// don't implement ContentBearer (the default is false).
func HasContent(m Method) bool {
	if cb, ok := m.(ContentBearer); ok {
		return cb.HasContent()
	}
	return false
}
