package messages

import (
	"bytes"
	"fmt"
	"io"

	messagefb "github.com/cbodonnell/snake/flatbuffers/message"
	snapshotfb "github.com/cbodonnell/snake/flatbuffers/snapshot"
	"github.com/cbodonnell/snake/pkg/game/types"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

func SerializeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress message: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

func DeserializeMessage(data []byte) (*Message, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)

	payload := builder.CreateByteVector(m.Payload)

	messagefb.MessageStart(builder)
	messagefb.MessageAddType(builder, byte(m.Type))
	messagefb.MessageAddTimestamp(builder, m.Timestamp)
	messagefb.MessageAddPayload(builder, payload)
	messageOffset := messagefb.MessageEnd(builder)
	builder.Finish(messageOffset)
	b := builder.FinishedBytes()

	return b, nil
}

func DeserializeMessageFlatbuffer(b []byte) (message *Message, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	// flatbuffers accessors panic on out of range offsets
	defer func() {
		if r := recover(); r != nil {
			message, err = nil, fmt.Errorf("malformed message buffer: %v", r)
		}
	}()

	messageFlatbuffer := messagefb.GetRootAsMessage(b, 0)
	message = &Message{
		Type:      MessageType(messageFlatbuffer.Type()),
		Timestamp: messageFlatbuffer.Timestamp(),
		Payload:   messageFlatbuffer.PayloadBytes(),
	}

	return message, nil
}

func SerializeSnapshot(s types.Snapshot) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)
	snapshot := SerializeSnapshotFlatbuffer(builder, s)
	builder.Finish(snapshot)
	return builder.FinishedBytes(), nil
}

func DeserializeSnapshot(b []byte) (types.Snapshot, error) {
	snapshot, err := DeserializeSnapshotFlatbuffer(b)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to deserialize snapshot: %v", err)
	}

	return snapshot, nil
}

func SerializeSnapshotFlatbuffer(builder *flatbuffers.Builder, s types.Snapshot) flatbuffers.UOffsetT {
	snapshotfb.SnapshotStartSnakeVector(builder, len(s.Snake))
	for i := len(s.Snake) - 1; i >= 0; i-- {
		snapshotfb.CreateCoordinate(builder, int32(s.Snake[i].X), int32(s.Snake[i].Y))
	}
	snake := builder.EndVector(len(s.Snake))

	snapshotfb.SnapshotStart(builder)
	snapshotfb.SnapshotAddStatus(builder, byte(s.Status))
	snapshotfb.SnapshotAddDirection(builder, byte(s.Direction))
	snapshotfb.SnapshotAddScore(builder, int32(s.Score))
	snapshotfb.SnapshotAddHighScore(builder, int32(s.HighScore))
	snapshotfb.SnapshotAddSpeed(builder, int32(s.Speed))
	snapshotfb.SnapshotAddFood(builder, snapshotfb.CreateCoordinate(builder, int32(s.Food.X), int32(s.Food.Y)))
	snapshotfb.SnapshotAddSnake(builder, snake)
	return snapshotfb.SnapshotEnd(builder)
}

func DeserializeSnapshotFlatbuffer(b []byte) (s types.Snapshot, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return types.Snapshot{}, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = types.Snapshot{}, fmt.Errorf("malformed snapshot buffer: %v", r)
		}
	}()

	snapshotFlatbuffer := snapshotfb.GetRootAsSnapshot(b, 0)

	status := types.Status(snapshotFlatbuffer.Status())
	if status > types.StatusGameOver {
		return types.Snapshot{}, fmt.Errorf("invalid status: %d", status)
	}
	direction := types.Direction(snapshotFlatbuffer.Direction())
	if !direction.Valid() {
		return types.Snapshot{}, fmt.Errorf("invalid direction: %d", direction)
	}

	s = types.Snapshot{
		Snake:     make([]types.Coordinate, snapshotFlatbuffer.SnakeLength()),
		Direction: direction,
		Status:    status,
		Score:     int(snapshotFlatbuffer.Score()),
		HighScore: int(snapshotFlatbuffer.HighScore()),
		Speed:     int(snapshotFlatbuffer.Speed()),
	}
	if food := snapshotFlatbuffer.Food(nil); food != nil {
		s.Food = types.Coordinate{X: int(food.X()), Y: int(food.Y())}
	}
	segment := &snapshotfb.Coordinate{}
	for i := range s.Snake {
		snapshotFlatbuffer.Snake(segment, i)
		s.Snake[i] = types.Coordinate{X: int(segment.X()), Y: int(segment.Y())}
	}

	return s, nil
}
