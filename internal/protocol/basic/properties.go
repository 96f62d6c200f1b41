package basic

import (
	"encoding/binary"
	"errors"
	"time"
)

// Property flag bits, MSB first in wire order. Bit 0 of a flag word is
// the continuation bit.
const (
	FlagContentType     uint16 = 1 << 15
	FlagContentEncoding uint16 = 1 << 14
	FlagHeaders         uint16 = 1 << 13
	FlagDeliveryMode    uint16 = 1 << 12
	FlagPriority        uint16 = 1 << 11
	FlagCorrelationID   uint16 = 1 << 10
	FlagReplyTo         uint16 = 1 << 9
	FlagExpiration      uint16 = 1 << 8
	FlagMessageID       uint16 = 1 << 7
	FlagTimestamp       uint16 = 1 << 6
	FlagType            uint16 = 1 << 5
	FlagUserID          uint16 = 1 << 4
	FlagAppID           uint16 = 1 << 3
	FlagClusterID       uint16 = 1 << 2
)

var ErrShortProperties = errors.New("basic: truncated property list")

// Properties is the basic-class property list. Flags records which
// fields were present on the wire; absent fields keep zero values.
type Properties struct {
	Flags           uint16
	ContentType     string
	ContentEncoding string
	Headers         Table
	DeliveryMode    uint8
	Priority        uint8
	CorrelationID   string
	ReplyTo         string
	Expiration      string
	MessageID       string
	Timestamp       time.Time
	Type            string
	UserID          string
	AppID           string
	ClusterID       string
}

// DecodeProperties decodes a basic-class property list and returns the
// unconsumed remainder.
func DecodeProperties(buf []byte) (Properties, []byte, error) {
	if len(buf) < 2 {
		return Properties{}, nil, ErrShortProperties
	}
	flags := binary.BigEndian.Uint16(buf)
	rest := buf[2:]
	// The basic class defines no properties past the first flag word;
	// continuation words are consumed and discarded.
	for word := flags; word&1 == 1; {
		if len(rest) < 2 {
			return Properties{}, nil, ErrShortProperties
		}
		word = binary.BigEndian.Uint16(rest)
		rest = rest[2:]
	}

	p := Properties{Flags: flags}
	var err error
	if flags&FlagContentType != 0 {
		if p.ContentType, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagContentEncoding != 0 {
		if p.ContentEncoding, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagHeaders != 0 {
		if p.Headers, rest, err = DecodeTable(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagDeliveryMode != 0 {
		if p.DeliveryMode, rest, err = readOctet(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagPriority != 0 {
		if p.Priority, rest, err = readOctet(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagCorrelationID != 0 {
		if p.CorrelationID, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagReplyTo != 0 {
		if p.ReplyTo, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagExpiration != 0 {
		if p.Expiration, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagMessageID != 0 {
		if p.MessageID, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagTimestamp != 0 {
		if len(rest) < 8 {
			return Properties{}, nil, ErrShortProperties
		}
		p.Timestamp = time.Unix(int64(binary.BigEndian.Uint64(rest)), 0).UTC()
		rest = rest[8:]
	}
	if flags&FlagType != 0 {
		if p.Type, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagUserID != 0 {
		if p.UserID, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagAppID != 0 {
		if p.AppID, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	if flags&FlagClusterID != 0 {
		if p.ClusterID, rest, err = readShortStr(rest); err != nil {
			return Properties{}, nil, err
		}
	}
	return p, rest, nil
}

func readOctet(buf []byte) (uint8, []byte, error) {
	if len(buf) < 1 {
		return 0, nil, ErrShortProperties
	}
	return buf[0], buf[1:], nil
}

// AppendProperties appends the wire encoding of p to dst. Presence is
// driven by p.Flags, so decode-encode round trips are byte-exact.
func AppendProperties(dst []byte, p Properties) ([]byte, error) {
	dst = binary.BigEndian.AppendUint16(dst, p.Flags&^1)
	var err error
	if p.Flags&FlagContentType != 0 {
		if dst, err = appendShortStr(dst, p.ContentType); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagContentEncoding != 0 {
		if dst, err = appendShortStr(dst, p.ContentEncoding); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagHeaders != 0 {
		if dst, err = AppendTable(dst, p.Headers); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagDeliveryMode != 0 {
		dst = append(dst, p.DeliveryMode)
	}
	if p.Flags&FlagPriority != 0 {
		dst = append(dst, p.Priority)
	}
	if p.Flags&FlagCorrelationID != 0 {
		if dst, err = appendShortStr(dst, p.CorrelationID); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagReplyTo != 0 {
		if dst, err = appendShortStr(dst, p.ReplyTo); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagExpiration != 0 {
		if dst, err = appendShortStr(dst, p.Expiration); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagMessageID != 0 {
		if dst, err = appendShortStr(dst, p.MessageID); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagTimestamp != 0 {
		dst = binary.BigEndian.AppendUint64(dst, uint64(p.Timestamp.Unix()))
	}
	if p.Flags&FlagType != 0 {
		if dst, err = appendShortStr(dst, p.Type); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagUserID != 0 {
		if dst, err = appendShortStr(dst, p.UserID); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagAppID != 0 {
		if dst, err = appendShortStr(dst, p.AppID); err != nil {
			return nil, err
		}
	}
	if p.Flags&FlagClusterID != 0 {
		if dst, err = appendShortStr(dst, p.ClusterID); err != nil {
			return nil, err
		}
	}
	return dst, nil
}
