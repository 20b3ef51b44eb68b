package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// Namespaces used on the wire
const (
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	ServiceNamespace  = "http://server.service.sistemaforestalfinal.mycompany.com/"
)

// ErrMalformed is returned when a document is not a usable SOAP envelope
var ErrMalformed = errors.New("malformed SOAP envelope")

// Field is one named scalar value, a request parameter or a property of a returned record
type Field struct {
	Name  string
	Value string
}

// Return is one <return> element of a response: either a scalar (Text) or a record (Fields)
type Return struct {
	Text   string
	Fields []Field
}

// Get returns the value of the named field, or "" when absent
func (r Return) Get(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Has reports whether the named field is present
func (r Return) Has(name string) bool {
	for _, f := range r.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Fault is a SOAP 1.1 fault
type Fault struct {
	Code   string
	String string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.String)
}

// node is a namespace-agnostic view of an element
type node struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []node `xml:",any"`
}

type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
		} `xml:"Fault"`
		Content []node `xml:",any"`
	} `xml:"Body"`
}

func start(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// write wraps the body produced by fn in an envelope
func write(fn func(enc *xml.Encoder) error) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)

	env := start("soapenv:Envelope", attr("xmlns:soapenv", EnvelopeNamespace))
	body := start("soapenv:Body")
	if err := enc.EncodeToken(env); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(body); err != nil {
		return nil, err
	}
	if err := fn(enc); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(body.End()); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(env.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFields(enc *xml.Encoder, fields []Field) error {
	for _, f := range fields {
		if err := enc.EncodeElement(f.Value, start(f.Name)); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRequest builds the envelope for calling op with params.
// Parameters are unqualified children of the tns-qualified operation element.
func EncodeRequest(op string, params []Field) ([]byte, error) {
	return write(func(enc *xml.Encoder) error {
		el := start("tns:"+op, attr("xmlns:tns", ServiceNamespace))
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if err := writeFields(enc, params); err != nil {
			return err
		}
		return enc.EncodeToken(el.End())
	})
}

// EncodeResponse builds the envelope answering op with returns
func EncodeResponse(op string, returns []Return) ([]byte, error) {
	return write(func(enc *xml.Encoder) error {
		el := start("ns2:"+op+"Response", attr("xmlns:ns2", ServiceNamespace))
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		for _, r := range returns {
			ret := start("return")
			if r.Fields == nil {
				if err := enc.EncodeElement(r.Text, ret); err != nil {
					return err
				}
				continue
			}
			if err := enc.EncodeToken(ret); err != nil {
				return err
			}
			if err := writeFields(enc, r.Fields); err != nil {
				return err
			}
			if err := enc.EncodeToken(ret.End()); err != nil {
				return err
			}
		}
		return enc.EncodeToken(el.End())
	})
}

// EncodeFault builds a fault envelope
func EncodeFault(f Fault) ([]byte, error) {
	return write(func(enc *xml.Encoder) error {
		el := start("soapenv:Fault")
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if err := enc.EncodeElement(f.Code, start("faultcode")); err != nil {
			return err
		}
		if err := enc.EncodeElement(f.String, start("faultstring")); err != nil {
			return err
		}
		return enc.EncodeToken(el.End())
	})
}

func decode(data []byte) (*envelope, error) {
	var env envelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &env, nil
}

func fields(n node) []Field {
	out := make([]Field, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, Field{Name: c.XMLName.Local, Value: strings.TrimSpace(c.Text)})
	}
	return out
}

// DecodeRequest extracts the operation name and parameters from a request envelope
func DecodeRequest(data []byte) (string, []Field, error) {
	env, err := decode(data)
	if err != nil {
		return "", nil, err
	}
	if len(env.Body.Content) == 0 {
		return "", nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	op := env.Body.Content[0]
	return op.XMLName.Local, fields(op), nil
}

// DecodeResponse extracts the <return> elements from a response envelope.
// A fault body is returned as a *Fault error.
func DecodeResponse(data []byte) ([]Return, error) {
	env, err := decode(data)
	if err != nil {
		return nil, err
	}
	if f := env.Body.Fault; f != nil {
		return nil, &Fault{Code: strings.TrimSpace(f.Code), String: strings.TrimSpace(f.String)}
	}
	if len(env.Body.Content) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}

	var returns []Return
	for _, c := range env.Body.Content[0].Children {
		if c.XMLName.Local != "return" {
			continue
		}
		r := Return{Text: strings.TrimSpace(c.Text)}
		if len(c.Children) > 0 {
			r.Fields = fields(c)
		}
		returns = append(returns, r)
	}
	return returns, nil
}
