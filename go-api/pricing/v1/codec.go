package v1

import (
	"fmt"

	"github.com/ugorji/go/codec"
	"google.golang.org/grpc/encoding"
)

// CodecName gRPC content-subtype，请求头为 application/grpc+msgpack
const CodecName = "msgpack"

var msgpackHandle = func() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true
	return h
}()

func init() {
	encoding.RegisterCodec(msgpackCodec{})
}

// msgpackCodec MessagePack 编解码，float64 的 NaN 与 Inf 可无损往返
type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, msgpackHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack marshal %T: %w", v, err)
	}
	return b, nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	if err := codec.NewDecoderBytes(data, msgpackHandle).Decode(v); err != nil {
		return fmt.Errorf("msgpack unmarshal %T: %w", v, err)
	}
	return nil
}

func (msgpackCodec) Name() string {
	return CodecName
}
