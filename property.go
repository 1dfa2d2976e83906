package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
	"github.com/chemfiles/chemfiles.go/errors"
)

const kindProperty = "Property"

// Property is an engine-owned tagged union holding a bool, double, string
// or 3-vector value. Atoms, frames and residues store named properties.
type Property struct {
	h handle
}

// NewBoolProperty creates a boolean property.
func NewBoolProperty(value bool) (*Property, error) {
	return newProperty(func(s *engine.Session) (uint32, error) {
		return s.CallPtr(kindProperty, engine.SymPropertyBool, boolArg(value))
	})
}

// NewDoubleProperty creates a double property.
func NewDoubleProperty(value float64) (*Property, error) {
	return newProperty(func(s *engine.Session) (uint32, error) {
		return s.CallPtr(kindProperty, engine.SymPropertyDouble, f64(value))
	})
}

// NewStringProperty creates a string property.
func NewStringProperty(value string) (*Property, error) {
	return newProperty(func(s *engine.Session) (uint32, error) {
		ref, err := s.Scratch().CString(value)
		if err != nil {
			return 0, err
		}
		return s.CallPtr(kindProperty, engine.SymPropertyString, uint64(ref.Ptr))
	})
}

// NewVector3DProperty creates a 3-vector property.
func NewVector3DProperty(value [3]float64) (*Property, error) {
	return newProperty(func(s *engine.Session) (uint32, error) {
		ref, err := s.Scratch().Vector3DFrom(value)
		if err != nil {
			return 0, err
		}
		return s.CallPtr(kindProperty, engine.SymPropertyVector3D, uint64(ref.Ptr))
	})
}

func newProperty(ctor func(*engine.Session) (uint32, error)) (*Property, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		var err error
		raw, err = ctor(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Property{h: wrapHandle(raw, kindProperty, false)}, nil
}

// Kind returns the discriminant of the stored value.
func (p *Property) Kind() (PropertyKind, error) {
	var kind PropertyKind
	err := withSession(func(s *engine.Session) error {
		ptr, err := p.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Enum()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymPropertyGetKind, ptr, uint64(ref.Ptr)); err != nil {
			return err
		}
		v, err := s.Scratch().GetEnum(ref)
		kind = PropertyKind(v)
		return err
	})
	return kind, err
}

// Bool returns the boolean value; the engine rejects other kinds.
func (p *Property) Bool() (bool, error) {
	return getFlag(&p.h, engine.SymPropertyGetBool)
}

// Double returns the double value; the engine rejects other kinds.
func (p *Property) Double() (float64, error) {
	return getDouble(&p.h, engine.SymPropertyGetDouble)
}

// StringValue returns the string value; the engine rejects other kinds.
func (p *Property) StringValue() (string, error) {
	return getGrownString(&p.h, engine.SymPropertyGetString)
}

// Vector3D returns the 3-vector value; the engine rejects other kinds.
func (p *Property) Vector3D() ([3]float64, error) {
	var out [3]float64
	err := withSession(func(s *engine.Session) error {
		ptr, err := p.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Vector3D()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymPropertyGetVector3D, ptr, uint64(ref.Ptr)); err != nil {
			return err
		}
		out, err = s.Scratch().GetVector3D(ref)
		return err
	})
	return out, err
}

// Value returns the stored value as the matching Go type.
func (p *Property) Value() (any, error) {
	kind, err := p.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case PropertyBool:
		return p.Bool()
	case PropertyDouble:
		return p.Double()
	case PropertyString:
		return p.StringValue()
	case PropertyVector3D:
		return p.Vector3D()
	default:
		return nil, errors.InvalidInput("unknown property kind %d", kind)
	}
}

// Release frees the engine-side property.
func (p *Property) Release() error {
	return p.h.release()
}

func boolArg(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// newRawProperty stages a host value as a temporary engine property inside
// an open session. The caller frees the returned handle.
func newRawProperty(s *engine.Session, value any) (uint32, error) {
	switch v := value.(type) {
	case bool:
		return s.CallPtr(kindProperty, engine.SymPropertyBool, boolArg(v))
	case float64:
		return s.CallPtr(kindProperty, engine.SymPropertyDouble, f64(v))
	case int:
		return s.CallPtr(kindProperty, engine.SymPropertyDouble, f64(float64(v)))
	case string:
		ref, err := s.Scratch().CString(v)
		if err != nil {
			return 0, err
		}
		return s.CallPtr(kindProperty, engine.SymPropertyString, uint64(ref.Ptr))
	case [3]float64:
		ref, err := s.Scratch().Vector3DFrom(v)
		if err != nil {
			return 0, err
		}
		return s.CallPtr(kindProperty, engine.SymPropertyVector3D, uint64(ref.Ptr))
	default:
		return 0, errors.InvalidInput("unsupported property value type %T", value)
	}
}

// setNamedProperty assigns value under name on the object behind h, going
// through a temporary property handle.
func setNamedProperty(h *handle, symbol, name string, value any) error {
	return withSession(func(s *engine.Session) error {
		p, err := h.mutPtr()
		if err != nil {
			return err
		}
		nameRef, err := s.Scratch().CString(name)
		if err != nil {
			return err
		}
		prop, err := newRawProperty(s, value)
		if err != nil {
			return err
		}
		callErr := s.CallStatus(symbol, p, uint64(nameRef.Ptr), uint64(prop))
		if freeErr := s.CallVoid(engine.SymFree, uint64(prop)); callErr == nil {
			callErr = freeErr
		}
		return callErr
	})
}

// getNamedProperty looks name up on the object behind h. A missing property
// is reported as ok=false, not as an error.
func getNamedProperty(h *handle, symbol, name string) (*Property, bool, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := h.ptr()
		if err != nil {
			return err
		}
		nameRef, err := s.Scratch().CString(name)
		if err != nil {
			return err
		}
		res, err := s.Call(symbol, p, uint64(nameRef.Ptr))
		if err != nil {
			return err
		}
		raw = uint32(res[0])
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if raw == 0 {
		return nil, false, nil
	}
	return &Property{h: wrapHandle(raw, kindProperty, false)}, true, nil
}

// listNamedProperties returns the property names of the object behind h.
func listNamedProperties(h *handle, countSymbol, listSymbol string) ([]string, error) {
	var names []string
	err := withSession(func(s *engine.Session) error {
		p, err := h.ptr()
		if err != nil {
			return err
		}
		countRef, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		if err := s.CallStatus(countSymbol, p, uint64(countRef.Ptr)); err != nil {
			return err
		}
		n, err := s.Scratch().GetU64(countRef)
		if err != nil || n == 0 {
			return err
		}
		arr, err := s.Scratch().Ptrs(uint32(n))
		if err != nil {
			return err
		}
		if err := s.CallStatus(listSymbol, p, uint64(arr.Ptr), n); err != nil {
			return err
		}
		ptrs, err := s.Scratch().GetPtrs(arr)
		if err != nil {
			return err
		}
		names = make([]string, 0, len(ptrs))
		for _, sp := range ptrs {
			name, err := s.ReadCString(sp)
			if err != nil {
				return err
			}
			names = append(names, name)
		}
		return nil
	})
	return names, err
}
