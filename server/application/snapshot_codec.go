package application

import (
	"encoding/binary"
	"errors"
	"math"

	"spearhunt/server/domain"
)

// スナップショットのワイヤ表現 (リトルエンディアン)
//
//	tick        u32 (4)
//	score       u32 (4)
//	playerHP    u8  (1)
//	fireState   u8  (1)
//	flags       u8  (1) - bit0: paused, bit1: gameOver
//	notice      u8  (1)
//	power       f32 (4)
//	aim         Vec3 (12)
//	animalCount u8  (1) + animalCount * 20
//	spearCount  u8  (1) + spearCount * 29
//
//	animal: id u32, archetype u8, lifecycle u8, health u8, maxHealth u8, pos Vec3
//	spear:  id u32, flags u8 (bit0: active, bit1: hitAnimal), pos Vec3, vel Vec3

var byteOrder = binary.LittleEndian

const (
	snapshotFixedSize = 30
	animalWireSize    = 20
	spearWireSize     = 29
)

var ErrInvalidSnapshotPayload = errors.New("invalid snapshot payload")

func (s *Snapshot) Encode() []byte {
	size := snapshotFixedSize + len(s.Animals)*animalWireSize + len(s.Spears)*spearWireSize
	buf := make([]byte, size)

	byteOrder.PutUint32(buf[0:4], uint32(s.Tick&0xFFFFFFFF))
	byteOrder.PutUint32(buf[4:8], s.Score)
	buf[8] = s.PlayerHP
	buf[9] = uint8(s.FireState)
	var flags uint8
	if s.Paused {
		flags |= 1
	}
	if s.GameOver {
		flags |= 2
	}
	buf[10] = flags
	buf[11] = uint8(s.Notice)
	byteOrder.PutUint32(buf[12:16], math.Float32bits(s.Power))
	s.Aim.EncodeTo(buf[16:28])

	buf[28] = uint8(len(s.Animals))
	off := 29
	for _, a := range s.Animals {
		byteOrder.PutUint32(buf[off:], a.ID)
		buf[off+4] = uint8(a.Archetype)
		buf[off+5] = uint8(a.Lifecycle)
		buf[off+6] = a.Health
		buf[off+7] = a.MaxHealth
		a.Position.EncodeTo(buf[off+8:])
		off += animalWireSize
	}

	buf[off] = uint8(len(s.Spears))
	off++
	for _, sp := range s.Spears {
		byteOrder.PutUint32(buf[off:], sp.ID)
		var f uint8
		if sp.Active {
			f |= 1
		}
		if sp.HitAnimal {
			f |= 2
		}
		buf[off+4] = f
		sp.Position.EncodeTo(buf[off+5:])
		sp.Velocity.EncodeTo(buf[off+17:])
		off += spearWireSize
	}
	return buf
}

// ParseSnapshotPayload はスナップショットのワイヤ表現を復元します。
func ParseSnapshotPayload(data []byte) (*Snapshot, error) {
	if len(data) < snapshotFixedSize {
		return nil, ErrInvalidSnapshotPayload
	}

	snap := &Snapshot{
		Tick:      uint64(byteOrder.Uint32(data[0:4])),
		Score:     byteOrder.Uint32(data[4:8]),
		PlayerHP:  data[8],
		FireState: FireState(data[9]),
		Paused:    data[10]&1 != 0,
		GameOver:  data[10]&2 != 0,
		Notice:    NoticeKind(data[11]),
		Power:     math.Float32frombits(byteOrder.Uint32(data[12:16])),
	}
	aim, err := domain.ParseVec3(data[16:28])
	if err != nil {
		return nil, err
	}
	snap.Aim = *aim

	animalCount := int(data[28])
	off := 29
	if len(data) < off+animalCount*animalWireSize+1 {
		return nil, ErrInvalidSnapshotPayload
	}
	snap.Animals = make([]AnimalState, animalCount)
	for i := range animalCount {
		pos, err := domain.ParseVec3(data[off+8 : off+20])
		if err != nil {
			return nil, err
		}
		// 未知の種別タグはParams()での配列外参照を招くため拒否する
		if data[off+4] >= archetypeCount {
			return nil, ErrInvalidSnapshotPayload
		}
		snap.Animals[i] = AnimalState{
			ID:        byteOrder.Uint32(data[off:]),
			Archetype: Archetype(data[off+4]),
			Lifecycle: AnimalLifecycle(data[off+5]),
			Health:    data[off+6],
			MaxHealth: data[off+7],
			Position:  *pos,
		}
		off += animalWireSize
	}

	spearCount := int(data[off])
	off++
	if len(data) < off+spearCount*spearWireSize {
		return nil, ErrInvalidSnapshotPayload
	}
	snap.Spears = make([]SpearState, spearCount)
	for i := range spearCount {
		pos, err := domain.ParseVec3(data[off+5 : off+17])
		if err != nil {
			return nil, err
		}
		vel, err := domain.ParseVec3(data[off+17 : off+29])
		if err != nil {
			return nil, err
		}
		snap.Spears[i] = SpearState{
			ID:        byteOrder.Uint32(data[off:]),
			Active:    data[off+4]&1 != 0,
			HitAnimal: data[off+4]&2 != 0,
			Position:  *pos,
			Velocity:  *vel,
		}
		off += spearWireSize
	}
	return snap, nil
}
