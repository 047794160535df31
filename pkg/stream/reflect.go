package stream

import (
	"github.com/metercore/mcore/pkg/class"
	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/variant"
)

// streamObject is the surface the reflected accessors dispatch through;
// every concrete stream satisfies it via the embedded Stream.
type streamObject interface {
	variant.Object
	Name() string
	Flags() Flags
	IsOpen() bool
	Key() string
	SetKey(string) error
	Position() (int, error)
	SetPosition(int) error
	Size() (int, error)
	SetSize(int) error
	ReadByte() (int, error)
	Read(int) ([]byte, error)
	ReadAvailable(int) ([]byte, error)
	ReadAll() ([]byte, error)
	ReadLine() (variant.Variant, error)
	ReadAllLines() ([]string, error)
	WriteByte(byte) error
	Write([]byte) error
	WriteLine(string) error
	WriteAllLines([]string) error
	Skip(int) error
	Flush() error
	Close() error
}

func asStream(self variant.Object) (streamObject, error) {
	s, ok := self.(streamObject)
	if !ok {
		return nil, errs.UnsupportedType("object of class %s is not a stream", errs.Quote(self.ClassName()))
	}
	return s, nil
}

var streamClass = &class.Descriptor{Name: "Stream"}

var memoryClass = &class.Descriptor{Name: "StreamMemory", Parent: streamClass}

var fileClass = &class.Descriptor{Name: "StreamFile", Parent: streamClass}

func classEnumeration(d *class.Descriptor, name string, value uint32) {
	d.AddProperty(&class.Property{
		Name: name,
		Get: func(variant.Object) (variant.Variant, error) {
			return variant.NewUInt(value), nil
		},
	})
}

func init() {
	classEnumeration(streamClass, "FlagReadOnly", uint32(FlagReadOnly))
	classEnumeration(streamClass, "FlagWriteOnly", uint32(FlagWriteOnly))
	classEnumeration(streamClass, "FlagReadWrite", uint32(FlagReadWrite))
	classEnumeration(streamClass, "FlagText", uint32(FlagText))
	classEnumeration(streamClass, "FlagBuffered", uint32(FlagBuffered))

	streamClass.AddProperty(&class.Property{
		Name: "Name",
		Get: func(self variant.Object) (variant.Variant, error) {
			s, err := asStream(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewString(s.Name()), nil
		},
	})
	streamClass.AddProperty(&class.Property{
		Name: "Flags",
		Get: func(self variant.Object) (variant.Variant, error) {
			s, err := asStream(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewUInt(uint32(s.Flags())), nil
		},
	})
	streamClass.AddProperty(&class.Property{
		Name: "IsOpen",
		Get: func(self variant.Object) (variant.Variant, error) {
			s, err := asStream(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewBool(s.IsOpen()), nil
		},
	})
	streamClass.AddProperty(&class.Property{
		Name: "Position",
		Get: func(self variant.Object) (variant.Variant, error) {
			s, err := asStream(self)
			if err != nil {
				return variant.Variant{}, err
			}
			pos, err := s.Position()
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewUInt(uint32(pos)), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			s, err := asStream(self)
			if err != nil {
				return err
			}
			pos, err := v.AsUInt()
			if err != nil {
				return err
			}
			return s.SetPosition(int(pos))
		},
	})
	streamClass.AddProperty(&class.Property{
		Name: "Size",
		Get: func(self variant.Object) (variant.Variant, error) {
			s, err := asStream(self)
			if err != nil {
				return variant.Variant{}, err
			}
			size, err := s.Size()
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewUInt(uint32(size)), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			s, err := asStream(self)
			if err != nil {
				return err
			}
			size, err := v.AsUInt()
			if err != nil {
				return err
			}
			return s.SetSize(int(size))
		},
	})
	streamClass.AddProperty(&class.Property{
		Name: "Key",
		Get: func(self variant.Object) (variant.Variant, error) {
			s, err := asStream(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewString(s.Key()), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			s, err := asStream(self)
			if err != nil {
				return err
			}
			key, err := v.AsString()
			if err != nil {
				return err
			}
			return s.SetKey(key)
		},
	})

	streamClass.Service("ReadByte").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		b, err := s.ReadByte()
		if err != nil {
			return variant.Variant{}, err
		}
		if b < 0 {
			return variant.NewInt(-1), nil
		}
		return variant.NewByte(byte(b)), nil
	})
	streamClass.Service("Read").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		count, err := args[0].AsUInt()
		if err != nil {
			return variant.Variant{}, err
		}
		data, err := s.Read(int(count))
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewByteString(variant.AcceptByteString, data), nil
	})
	streamClass.Service("ReadAvailable").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		count, err := args[0].AsUInt()
		if err != nil {
			return variant.Variant{}, err
		}
		data, err := s.ReadAvailable(int(count))
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewByteString(variant.AcceptByteString, data), nil
	})
	streamClass.Service("ReadAll").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		data, err := s.ReadAll()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewByteString(variant.AcceptByteString, data), nil
	})
	streamClass.Service("ReadLine").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		return s.ReadLine()
	})
	streamClass.Service("ReadAllLines").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		lines, err := s.ReadAllLines()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewStringCollection(lines), nil
	})
	streamClass.Service("WriteByte").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		b, err := args[0].AsByte()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), s.WriteByte(b)
	})
	streamClass.Service("Write").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		data, err := args[0].AsByteString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), s.Write(data)
	})
	streamClass.Service("WriteLine").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		line, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), s.WriteLine(line)
	})
	streamClass.Service("WriteAllLines").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		count, err := args[0].GetCount()
		if err != nil {
			return variant.Variant{}, err
		}
		lines := make([]string, 0, count)
		for i := 0; i < count; i++ {
			item, err := args[0].GetItem(variant.NewInt(int32(i)))
			if err != nil {
				return variant.Variant{}, err
			}
			line, err := item.AsString()
			if err != nil {
				return variant.Variant{}, err
			}
			lines = append(lines, line)
		}
		return variant.NewEmpty(), s.WriteAllLines(lines)
	})
	streamClass.Service("Skip").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		count, err := args[0].AsUInt()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), s.Skip(int(count))
	})
	streamClass.Service("Flush").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), s.Flush()
	})
	streamClass.Service("Close").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		s, err := asStream(self)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), s.Close()
	})

	memoryClass.AddProperty(&class.Property{
		Name: "Buffer",
		Get: func(self variant.Object) (variant.Variant, error) {
			m, ok := self.(*Memory)
			if !ok {
				return variant.Variant{}, errs.UnsupportedType("object of class %s is not a memory stream", errs.Quote(self.ClassName()))
			}
			return variant.NewByteString(variant.AcceptByteString, m.Buffer()), nil
		},
	})
	memoryClass.Service("New").AddOverload(0, func(variant.Object, []variant.Variant) (variant.Variant, error) {
		m, err := NewMemory()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewObject(m), nil
	})
	memoryClass.Service("New").AddOverload(1, func(_ variant.Object, args []variant.Variant) (variant.Variant, error) {
		data, err := args[0].AsByteString()
		if err != nil {
			return variant.Variant{}, err
		}
		m, err := NewMemoryBytes(data, FlagReadWrite)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewObject(m), nil
	})
	memoryClass.Service("New").AddOverload(2, func(_ variant.Object, args []variant.Variant) (variant.Variant, error) {
		data, err := args[0].AsByteString()
		if err != nil {
			return variant.Variant{}, err
		}
		flags, err := args[1].AsUInt()
		if err != nil {
			return variant.Variant{}, err
		}
		m, err := NewMemoryBytes(data, Flags(flags))
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewObject(m), nil
	})
	memoryClass.Service("CloseAndClear").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		m, ok := self.(*Memory)
		if !ok {
			return variant.Variant{}, errs.UnsupportedType("object of class %s is not a memory stream", errs.Quote(self.ClassName()))
		}
		return variant.NewEmpty(), m.CloseAndClear()
	})

	for _, d := range []*class.Descriptor{streamClass, memoryClass, fileClass} {
		if err := class.Register(d); err != nil {
			panic(err)
		}
	}
}
