package queryfields

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeKind discriminates the JSON value held by a Node
type NodeKind int

const (
	KindNull NodeKind = iota
	KindScalar
	KindObject
	KindArray
)

// Member is one key/value pair of an object node
type Member struct {
	Key   string
	Value *Node
}

// Node is a decoded JSON value that keeps object keys in payload order.
// Query results are walked in the order the BI platform emitted them.
type Node struct {
	Kind    NodeKind
	Members []Member
	Items   []*Node
	Value   any
}

// ResultRow is one row of a JSON query result
type ResultRow = *Node

// IsObject reports whether n is a JSON object
func (n *Node) IsObject() bool {
	return n != nil && n.Kind == KindObject
}

// Get returns the value stored under key in an object node
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Has reports whether an object node contains key
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeNode(dec)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler, emitting object keys in stored order
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case KindObject:
		buf.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindScalar:
		raw, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(raw)
	default:
		buf.WriteString("null")
	}
	return nil
}

func decodeNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		if tok == nil {
			return &Node{Kind: KindNull}, nil
		}
		return &Node{Kind: KindScalar, Value: tok}, nil
	}

	switch delim {
	case '{':
		node := &Node{Kind: KindObject}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			child, err := decodeNode(dec)
			if err != nil {
				return nil, err
			}
			node.set(key, child)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return node, nil
	case '[':
		node := &Node{Kind: KindArray, Items: []*Node{}}
		for dec.More() {
			child, err := decodeNode(dec)
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, child)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// set keeps the first position of a duplicated key and the last value
func (n *Node) set(key string, value *Node) {
	for i := range n.Members {
		if n.Members[i].Key == key {
			n.Members[i].Value = value
			return
		}
	}
	n.Members = append(n.Members, Member{Key: key, Value: value})
}

// ParseResultRows decodes a JSON query result. A payload that is not an array yields no rows.
func ParseResultRows(data []byte) ([]ResultRow, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode query result: %w", err)
	}
	if root.Kind != KindArray {
		return nil, nil
	}
	return root.Items, nil
}
