package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/klondike/internal/apperrors"
	"github.com/palemoky/klondike/internal/protocol"
)

// Format 帧编码格式
type Format int

const (
	// FormatJSON JSON 文本帧
	FormatJSON Format = iota
	// FormatBinary protobuf 二进制帧（google.protobuf.Struct 信封）
	FormatBinary
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "json"
}

// 信封字段名
const (
	fieldType    = "type"
	fieldPayload = "payload"
)

var errMissingType = errors.New("message type is missing")

// NewMessage 创建一个新消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := GetMessage()
	msg.Type = msgType

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			PutMessage(msg)
			return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 按指定格式编码消息
func Encode(m *protocol.Message, format Format) ([]byte, error) {
	if format == FormatBinary {
		return EncodeBinary(m)
	}
	return EncodeJSON(m)
}

// Decode 按指定格式解码消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func Decode(data []byte, format Format) (*protocol.Message, error) {
	if format == FormatBinary {
		return DecodeBinary(data)
	}
	return DecodeJSON(data)
}

// EncodeJSON 将消息编码为 JSON 字节
func EncodeJSON(m *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	// Encoder 会追加换行
	out := make([]byte, buf.Len()-1)
	copy(out, buf.Bytes())
	return out, nil
}

// DecodeJSON 从 JSON 字节解码消息
func DecodeJSON(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, errMissingType
	}
	return msg, nil
}

// EncodeBinary 将消息编码为 protobuf 字节，payload 转为 google.protobuf.Value
func EncodeBinary(m *protocol.Message) ([]byte, error) {
	st := GetPBStruct()
	defer PutPBStruct(st)

	st.Fields = map[string]*structpb.Value{
		fieldType: structpb.NewStringValue(string(m.Type)),
	}
	if len(m.Payload) > 0 {
		var v any
		if err := json.Unmarshal(m.Payload, &v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", m.Type, err)
		}
		pv, err := structpb.NewValue(v)
		if err != nil {
			return nil, fmt.Errorf("convert %s payload: %w", m.Type, err)
		}
		st.Fields[fieldPayload] = pv
	}
	return proto.Marshal(st)
}

// DecodeBinary 从 protobuf 字节解码消息
func DecodeBinary(data []byte) (*protocol.Message, error) {
	st := GetPBStruct()
	defer PutPBStruct(st)

	if err := proto.Unmarshal(data, st); err != nil {
		return nil, err
	}
	msgType := st.GetFields()[fieldType].GetStringValue()
	if msgType == "" {
		return nil, errMissingType
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)
	if pv, ok := st.GetFields()[fieldPayload]; ok {
		raw, err := json.Marshal(pv.AsInterface())
		if err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = raw
	}
	return msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型，空 payload 得到零值
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
	return msg
}

// NewErrorMessageFromErr 按错误码创建错误消息，文本保留错误的详细描述
func NewErrorMessageFromErr(err error) *protocol.Message {
	return NewErrorMessageWithText(apperrors.Code(err), err.Error())
}
