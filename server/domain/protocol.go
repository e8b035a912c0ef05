package domain

import (
	"encoding/binary"
	"errors"
	"time"
)

// バイトオーダー: リトルエンディアン
var byteOrder = binary.LittleEndian

const (
	HeaderSize        = 25
	PayloadHeaderSize = 2
)

// Header はメッセージヘッダー (25バイト)
//
//	version    u8      (1)
//	sessionID  [16]byte (16)
//	seq        u16     (2)
//	length     u16     (2)  - ペイロード長
//	timestamp  u32     (4)
type Header struct {
	Version   uint8
	SessionID [16]byte
	Seq       uint16
	Length    uint16
	Timestamp uint32
}

// DataType はメッセージの種別
type DataType uint8

const (
	// DataTypeGesture は入力アダプタ済みのジェスチャ信号（クライアント側分類）
	DataTypeGesture DataType = 1
	// DataTypeLandmark は正規化済みランドマーク列（サーバー側で分類）
	DataTypeLandmark DataType = 2
	// DataTypeSnapshot はサーバーからのレンダリング用スナップショット
	DataTypeSnapshot DataType = 3
	// DataTypeEvent はヒット・ミス・到達などの単発イベント通知
	DataTypeEvent DataType = 4
	// DataTypeControl は接続・セッション制御
	DataTypeControl DataType = 5
)

// ControlSubType はcontrolメッセージのサブタイプ
type ControlSubType uint8

const (
	ControlSubTypeJoin    ControlSubType = 1
	ControlSubTypeLeave   ControlSubType = 2
	ControlSubTypeKick    ControlSubType = 3
	ControlSubTypePing    ControlSubType = 4
	ControlSubTypePong    ControlSubType = 5
	ControlSubTypeError   ControlSubType = 6
	ControlSubTypeAssign  ControlSubType = 7
	ControlSubTypePause   ControlSubType = 8
	ControlSubTypeResume  ControlSubType = 9
	ControlSubTypeRestart ControlSubType = 10
	ControlSubTypeRotate  ControlSubType = 11
)

// EventSubType はeventメッセージのサブタイプ
type EventSubType uint8

const (
	EventSubTypeHit      EventSubType = 1
	EventSubTypeMiss     EventSubType = 2
	EventSubTypeArrival  EventSubType = 3
	EventSubTypeRespawn  EventSubType = 4
	EventSubTypeGameOver EventSubType = 5
)

// PayloadHeader はペイロードヘッダー (2バイト)
//
//	datatype  u8 (1)
//	subtype   u8 (1)
type PayloadHeader struct {
	DataType DataType
	SubType  uint8
}

var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidPayloadSize = errors.New("invalid payload size")
)

// ParseHeader はバイト列からHeaderをパースする
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeaderSize
	}

	var sessionID [16]byte
	copy(sessionID[:], data[1:17])

	return &Header{
		Version:   data[0],
		SessionID: sessionID,
		Seq:       byteOrder.Uint16(data[17:19]),
		Length:    byteOrder.Uint16(data[19:21]),
		Timestamp: byteOrder.Uint32(data[21:25]),
	}, nil
}

// Encode はHeaderをバイト列にエンコードする
func (h *Header) Encode() []byte {
	data := make([]byte, HeaderSize)
	data[0] = h.Version
	copy(data[1:17], h.SessionID[:])
	byteOrder.PutUint16(data[17:19], h.Seq)
	byteOrder.PutUint16(data[19:21], h.Length)
	byteOrder.PutUint32(data[21:25], h.Timestamp)
	return data
}

// ParsePayloadHeader はバイト列からPayloadHeaderをパースする
func ParsePayloadHeader(data []byte) (*PayloadHeader, error) {
	if len(data) < PayloadHeaderSize {
		return nil, ErrInvalidPayloadSize
	}

	return &PayloadHeader{
		DataType: DataType(data[0]),
		SubType:  data[1],
	}, nil
}

// Encode はPayloadHeaderをバイト列にエンコードする
func (p *PayloadHeader) Encode() []byte {
	data := make([]byte, PayloadHeaderSize)
	data[0] = byte(p.DataType)
	data[1] = byte(p.SubType)
	return data
}

// EncodeMessage はヘッダー・ペイロードヘッダー・ペイロードを1メッセージに組み立てる
func EncodeMessage(sessionID SessionID, dataType DataType, subType uint8, payload []byte) []byte {
	header := Header{
		Version:   1,
		SessionID: sessionID.Bytes(),
		Seq:       0,
		Length:    uint16(PayloadHeaderSize + len(payload)),
		Timestamp: uint32(time.Now().UnixMilli() & 0xFFFFFFFF),
	}
	payloadHeader := PayloadHeader{
		DataType: dataType,
		SubType:  subType,
	}

	data := make([]byte, 0, HeaderSize+PayloadHeaderSize+len(payload))
	data = append(data, header.Encode()...)
	data = append(data, payloadHeader.Encode()...)
	data = append(data, payload...)
	return data
}

// EncodeAssignMessage はセッションID通知メッセージをエンコードする
// クライアントに自分のセッションIDを通知するために使用
func EncodeAssignMessage(sessionID SessionID) []byte {
	return EncodeMessage(sessionID, DataTypeControl, uint8(ControlSubTypeAssign), nil)
}

// EncodeLeaveMessage はルーム離脱メッセージをエンコードする
// 異常切断時にclose()からRoom離脱を通知するために使用
func EncodeLeaveMessage(sessionID SessionID) []byte {
	return EncodeMessage(sessionID, DataTypeControl, uint8(ControlSubTypeLeave), nil)
}

// EncodePingMessage はPingメッセージをエンコードする
// クライアントに死活確認のpingを送信するために使用
func EncodePingMessage(sessionID SessionID) []byte {
	return EncodeMessage(sessionID, DataTypeControl, uint8(ControlSubTypePing), nil)
}

const GesturePayloadSize = 15

// GesturePayload は入力アダプタが出力するジェスチャ信号 (15バイト)
//
//	aimValid  u8   (1) - 0ならエイム点なし（ランドマーク喪失）
//	grip      u8   (1)
//	fire      u8   (1)
//	aim       Vec3 (12)
type GesturePayload struct {
	AimValid bool
	Grip     bool
	Fire     bool
	Aim      Vec3
}

var ErrInvalidGesturePayloadSize = errors.New("invalid gesture payload size")

func ParseGesturePayload(data []byte) (*GesturePayload, error) {
	if len(data) < GesturePayloadSize {
		return nil, ErrInvalidGesturePayloadSize
	}
	aim, err := ParseVec3(data[3:])
	if err != nil {
		return nil, err
	}
	return &GesturePayload{
		AimValid: data[0] != 0,
		Grip:     data[1] != 0,
		Fire:     data[2] != 0,
		Aim:      *aim,
	}, nil
}

func (g *GesturePayload) Encode() []byte {
	buf := make([]byte, GesturePayloadSize)
	buf[0] = boolByte(g.AimValid)
	buf[1] = boolByte(g.Grip)
	buf[2] = boolByte(g.Fire)
	g.Aim.EncodeTo(buf[3:])
	return buf
}

// LandmarkPayload は正規化済みキーポイント列
//
//	count      u8        (1)
//	landmarks  count*Vec3 (count*12) - 各座標は[0,1]正規化
type LandmarkPayload struct {
	Points []Vec3
}

var ErrInvalidLandmarkPayloadSize = errors.New("invalid landmark payload size")

func ParseLandmarkPayload(data []byte) (*LandmarkPayload, error) {
	if len(data) < 1 {
		return nil, ErrInvalidLandmarkPayloadSize
	}
	count := int(data[0])
	if len(data) < 1+count*Vec3Size {
		return nil, ErrInvalidLandmarkPayloadSize
	}
	points := make([]Vec3, count)
	for i := range count {
		p, err := ParseVec3(data[1+i*Vec3Size:])
		if err != nil {
			return nil, err
		}
		points[i] = *p
	}
	return &LandmarkPayload{Points: points}, nil
}

func (l *LandmarkPayload) Encode() []byte {
	buf := make([]byte, 1+len(l.Points)*Vec3Size)
	buf[0] = uint8(len(l.Points))
	for i, p := range l.Points {
		p.EncodeTo(buf[1+i*Vec3Size:])
	}
	return buf
}

const EventPayloadSize = 13

// EventPayload はイベント通知のペイロード (13バイト)
// イベント種別はPayloadHeaderのSubTypeで表し、未使用フィールドは0になる。
//
//	score     u32 (4)
//	animalID  u32 (4)
//	spearID   u32 (4)
//	damage    u8  (1)
type EventPayload struct {
	Score    uint32
	AnimalID uint32
	SpearID  uint32
	Damage   uint8
}

var ErrInvalidEventPayloadSize = errors.New("invalid event payload size")

func ParseEventPayload(data []byte) (*EventPayload, error) {
	if len(data) < EventPayloadSize {
		return nil, ErrInvalidEventPayloadSize
	}
	return &EventPayload{
		Score:    byteOrder.Uint32(data[0:4]),
		AnimalID: byteOrder.Uint32(data[4:8]),
		SpearID:  byteOrder.Uint32(data[8:12]),
		Damage:   data[12],
	}, nil
}

func (e *EventPayload) Encode() []byte {
	buf := make([]byte, EventPayloadSize)
	byteOrder.PutUint32(buf[0:4], e.Score)
	byteOrder.PutUint32(buf[4:8], e.AnimalID)
	byteOrder.PutUint32(buf[8:12], e.SpearID)
	buf[12] = e.Damage
	return buf
}

// EncodeEventMessage はイベント通知メッセージをエンコードする
func EncodeEventMessage(sessionID SessionID, sub EventSubType, payload EventPayload) []byte {
	return EncodeMessage(sessionID, DataTypeEvent, uint8(sub), payload.Encode())
}

const RotatePayloadSize = 2

// RotatePayload はカメラ回転の設定 (2バイト)
//
//	degrees  u16 (2) - 0/90/180/270のみ有効
type RotatePayload struct {
	Degrees uint16
}

var ErrInvalidRotatePayloadSize = errors.New("invalid rotate payload size")

func ParseRotatePayload(data []byte) (*RotatePayload, error) {
	if len(data) < RotatePayloadSize {
		return nil, ErrInvalidRotatePayloadSize
	}
	return &RotatePayload{Degrees: byteOrder.Uint16(data[0:2])}, nil
}

func (r *RotatePayload) Encode() []byte {
	buf := make([]byte, RotatePayloadSize)
	byteOrder.PutUint16(buf[0:2], r.Degrees)
	return buf
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
