// Package wire defines the pure, stateless pieces of the AMQP 0-9-1 method
// universe that the channel actor needs to make dispatch decisions: the
// method classifier (sync/async, class, content-bearing) and the exception
// table. It does not encode or decode frames — that is the transport's job.
package wire

import amqp091 "github.com/streadway/amqp"

// Table is the untyped argument table AMQP methods carry (field-table).
// Aliased onto streadway/amqp's type so callers can hand in the same
// Table values they'd build for any other AMQP client in the ecosystem.
type Table = amqp091.Table

// ClassID identifies an AMQP method's owning class.
type ClassID uint16

const (
	ClassConnection ClassID = 10
	ClassChannel    ClassID = 20
	ClassExchange   ClassID = 40
	ClassQueue      ClassID = 50
	ClassBasic      ClassID = 60
	ClassTx         ClassID = 90
	ClassConfirm    ClassID = 85
)

// MethodID identifies a method within its class.
type MethodID uint16

// Method is the sum type of AMQP methods the channel actor exchanges with
// its transport and the application. Every concrete method below (Open,
// OpenOk, Publish, Deliver, ...) implements it.
type Method interface {
	// ClassID and MethodID together identify the method on the wire.
	ClassID() ClassID
	MethodID() MethodID
	// MethodName is the "class.method" form used in logs and errors.
	MethodName() string
}

// ContentBearer is implemented by methods that carry a Content (properties
// + body) in addition to their arguments: basic.publish, basic.deliver,
// basic.return.
type ContentBearer interface {
	Method
	HasContent() bool
}

// Content is the (properties, payload) pair attached to content-bearing
// methods.
type Content struct {
	Properties Properties
	Body       []byte
}

// Properties mirrors the AMQP basic content-properties frame. Kept as our
// own type (rather than amqp091.Publishing) so the channel actor never
// depends on streadway/amqp's publish-time convenience wrapper — only on
// its plain Table type.
type Properties struct {
	ContentType     string
	ContentEncoding string
	Headers         Table
	DeliveryMode    uint8
	Priority        uint8
	CorrelationId   string
	ReplyTo         string
	Expiration      string
	MessageId       string
	Timestamp       int64
	Type            string
	UserId          string
	AppId           string
}

// classInfo is a pure lookup table replacing a dynamic-dispatch protocol
// module with static per-method facts.
type classInfo struct {
	class       ClassID
	synchronous bool
	hasContent  bool
}

// methodKey combines class and method id into a single lookup key, since
// method ids are only unique within a class.
type methodKey struct {
	class  ClassID
	method MethodID
}

var infoByKey = map[methodKey]classInfo{}

func registerMethod(class ClassID, method MethodID, synchronous, hasContent bool) {
	infoByKey[methodKey{class, method}] = classInfo{class: class, synchronous: synchronous, hasContent: hasContent}
}

func init() {
	// connection class — never legal on a channel, registered only so
	// ClassifyMethod can recognize and reject it.
	registerMethod(ClassConnection, 10, true, false)  // start
	registerMethod(ClassConnection, 11, false, false) // start-ok
	registerMethod(ClassConnection, 30, true, false)  // tune
	registerMethod(ClassConnection, 31, false, false) // tune-ok
	registerMethod(ClassConnection, 40, true, false)  // open
	registerMethod(ClassConnection, 41, false, false) // open-ok
	registerMethod(ClassConnection, 50, true, false)  // close
	registerMethod(ClassConnection, 51, false, false) // close-ok

	registerMethod(ClassChannel, 10, true, false)  // open
	registerMethod(ClassChannel, 11, false, false) // open-ok
	registerMethod(ClassChannel, 20, true, false)  // flow
	registerMethod(ClassChannel, 21, false, false) // flow-ok
	registerMethod(ClassChannel, 40, true, false)  // close
	registerMethod(ClassChannel, 41, false, false) // close-ok

	registerMethod(ClassBasic, 10, true, false)   // qos
	registerMethod(ClassBasic, 11, false, false)  // qos-ok
	registerMethod(ClassBasic, 20, true, false)   // consume
	registerMethod(ClassBasic, 21, false, false)  // consume-ok
	registerMethod(ClassBasic, 30, true, false)   // cancel
	registerMethod(ClassBasic, 31, false, false)  // cancel-ok
	registerMethod(ClassBasic, 40, false, true)   // publish
	registerMethod(ClassBasic, 50, false, true)   // return
	registerMethod(ClassBasic, 60, false, true)   // deliver
	registerMethod(ClassBasic, 70, true, false)   // get
	registerMethod(ClassBasic, 71, false, true)   // get-ok
	registerMethod(ClassBasic, 72, false, false)  // get-empty
	registerMethod(ClassBasic, 80, false, false)  // ack
	registerMethod(ClassBasic, 90, false, false)  // reject
	registerMethod(ClassBasic, 110, true, false)  // recover
	registerMethod(ClassBasic, 111, false, false) // recover-ok
	registerMethod(ClassBasic, 120, false, false) // nack

	registerMethod(ClassConfirm, 10, true, false)  // select
	registerMethod(ClassConfirm, 11, false, false) // select-ok

	registerMethod(ClassTx, 10, true, false)  // select
	registerMethod(ClassTx, 11, false, false) // select-ok
	registerMethod(ClassTx, 20, true, false)  // commit
	registerMethod(ClassTx, 21, false, false) // commit-ok
	registerMethod(ClassTx, 30, true, false)  // rollback
	registerMethod(ClassTx, 31, false, false) // rollback-ok
}

// MethodInfo is the result of classifying a method: its class, whether the
// protocol requires a correlated reply before another sync method can be
// issued, and whether it carries content.
type MethodInfo struct {
	Class       ClassID
	Synchronous bool
	HasContent  bool
}

// ClassifyMethod replaces a dynamic-dispatch protocol module with a pure
// table lookup.
func ClassifyMethod(m Method) (MethodInfo, bool) {
	info, ok := infoByKey[methodKey{m.ClassID(), m.MethodID()}]
	if !ok {
		return MethodInfo{}, false
	}
	return MethodInfo{Class: info.class, Synchronous: info.synchronous, HasContent: info.hasContent}, true
}

// IsSynchronous reports whether m's protocol contract requires a matching
// reply on the same channel before another synchronous method can be
// correlated.
func IsSynchronous(m Method) bool {
	info, ok := ClassifyMethod(m)
	return ok && info.Synchronous
}

// IsConnectionClass reports whether m belongs to AMQP class `connection`,
// meaning it belongs to the connection actor, never the channel.
func IsConnectionClass(m Method) bool {
	return m.ClassID() == ClassConnection
}
