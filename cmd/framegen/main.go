// framegen is a developer tool: it emits the frametapd config
// template, validates an existing config, or hex-dumps sample wire
// encodings of each frame variant for feeding a tap by hand.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wireline-io/amqframe/internal/config"
	"github.com/wireline-io/amqframe/internal/protocol/basic"
	"github.com/wireline-io/amqframe/internal/protocol/frame"
	"github.com/wireline-io/amqframe/internal/protocol/method"
)

func main() {
	template := flag.Bool("template", false, "write the config template")
	output := flag.String("output", "config.toml", "output path for the config template")
	force := flag.Bool("force", false, "overwrite an existing config file")
	validate := flag.String("validate", "", "validate the config file at this path")
	sample := flag.String("sample", "", "hex-dump a sample frame: protocol-header|method|header|body|heartbeat|session")
	channel := flag.Uint("channel", 1, "channel id for sample frames")
	flag.Parse()

	switch {
	case *template:
		if err := config.WriteTemplate(*output, *force); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote config template to %s", *output)
	case *validate != "":
		if _, err := config.LoadTapConfig(*validate); err != nil {
			log.Fatal(err)
		}
		log.Printf("validated config at %s", *validate)
	case *sample != "":
		if err := dumpSample(*sample, uint16(*channel)); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func dumpSample(kind string, channel uint16) error {
	enc := frame.Encoder{
		Methods: func(p frame.MethodPayload) ([]byte, error) {
			inv, ok := p.(method.Invocation)
			if !ok {
				return nil, fmt.Errorf("framegen: unexpected method payload %T", p)
			}
			return method.Append(nil, inv), nil
		},
		Properties: func(p frame.PropertyTable) ([]byte, error) {
			props, ok := p.(basic.Properties)
			if !ok {
				return nil, fmt.Errorf("framegen: unexpected property table %T", p)
			}
			return basic.AppendProperties(nil, props)
		},
	}

	var frames []frame.Frame
	switch kind {
	case "protocol-header":
		frames = []frame.Frame{frame.ProtocolHeader{Version: frame.ProtocolVersion{Major: 0, Minor: 9, Revision: 1}}}
	case "method":
		frames = []frame.Frame{sampleMethod(channel)}
	case "header":
		frames = []frame.Frame{sampleHeader(channel)}
	case "body":
		frames = []frame.Frame{frame.Body{Channel: channel, Data: []byte("hello, wire")}}
	case "heartbeat":
		frames = []frame.Frame{frame.Heartbeat{Channel: channel}}
	case "session":
		// A plausible connection opening: handshake, a method, a
		// content header, one body fragment, then a heartbeat.
		frames = []frame.Frame{
			frame.ProtocolHeader{Version: frame.ProtocolVersion{Major: 0, Minor: 9, Revision: 1}},
			sampleMethod(channel),
			sampleHeader(channel),
			frame.Body{Channel: channel, Data: []byte("hello, wire")},
			frame.Heartbeat{Channel: channel},
		}
	default:
		return fmt.Errorf("framegen: unknown sample kind %q", kind)
	}

	buf := []byte{}
	for _, f := range frames {
		var err error
		buf, err = enc.Append(buf, f)
		if err != nil {
			return err
		}
	}
	fmt.Print(hex.Dump(buf))
	return nil
}

func sampleMethod(channel uint16) frame.Frame {
	return frame.Method{
		Channel: channel,
		Payload: method.Invocation{ClassID: 60, MethodID: 40, Args: []byte{0, 0, 5, 'q', 'u', 'e', 'u', 'e'}},
	}
}

func sampleHeader(channel uint16) frame.Frame {
	return frame.Header{
		Channel: channel,
		ClassID: 60,
		Content: frame.ContentHeader{
			ClassID:  60,
			Weight:   0,
			BodySize: 11,
			Properties: basic.Properties{
				Flags:        basic.FlagContentType | basic.FlagDeliveryMode | basic.FlagTimestamp,
				ContentType:  "text/plain",
				DeliveryMode: 2,
				Timestamp:    time.Unix(1700000000, 0).UTC(),
			},
		},
	}
}
