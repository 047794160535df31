package xmldom

import (
	"github.com/metercore/mcore/pkg/class"
	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/object"
	"github.com/metercore/mcore/pkg/variant"
)

var xmlNodeClass = &class.Descriptor{Name: "XmlNode"}

var xmlDocumentClass = &class.Descriptor{Name: "XmlDocument", Parent: xmlNodeClass}

func newDocumentBase(d *Document) object.Base {
	return object.NewBase(xmlDocumentClass, d)
}

func asNode(self variant.Object) (*Node, error) {
	switch o := self.(type) {
	case *Node:
		return o, nil
	case *Document:
		return &o.Node, nil
	}
	return nil, errs.UnsupportedType("object of class %s is not an XML node", errs.Quote(self.ClassName()))
}

func asDocument(self variant.Object) (*Document, error) {
	d, ok := self.(*Document)
	if !ok {
		return nil, errs.UnsupportedType("object of class %s is not an XML document", errs.Quote(self.ClassName()))
	}
	return d, nil
}

func nodeVariant(n *Node) variant.Variant {
	if n == nil {
		return variant.NewEmpty()
	}
	return variant.NewObject(n)
}

func classEnumeration(d *class.Descriptor, name string, value uint32) {
	d.AddProperty(&class.Property{
		Name: name,
		Get: func(variant.Object) (variant.Variant, error) {
			return variant.NewUInt(value), nil
		},
	})
}

func nodeProperty(name string, get func(*Node) (variant.Variant, error), set func(*Node, variant.Variant) error) {
	p := &class.Property{
		Name: name,
		Get: func(self variant.Object) (variant.Variant, error) {
			n, err := asNode(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return get(n)
		},
	}
	if set != nil {
		p.Set = func(self variant.Object, v variant.Variant) error {
			n, err := asNode(self)
			if err != nil {
				return err
			}
			return set(n, v)
		}
	}
	xmlNodeClass.AddProperty(p)
}

func nodeService(name string, arity int, fn func(*Node, []variant.Variant) (variant.Variant, error)) {
	xmlNodeClass.Service(name).AddOverload(arity, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		n, err := asNode(self)
		if err != nil {
			return variant.Variant{}, err
		}
		return fn(n, args)
	})
}

func init() {
	classEnumeration(xmlNodeClass, "NodeDocument", uint32(NodeDocument))
	classEnumeration(xmlNodeClass, "NodeElement", uint32(NodeElement))
	classEnumeration(xmlNodeClass, "NodePcdata", uint32(NodePCDATA))
	classEnumeration(xmlNodeClass, "NodeCdata", uint32(NodeCDATA))
	classEnumeration(xmlNodeClass, "NodeComment", uint32(NodeComment))
	classEnumeration(xmlNodeClass, "NodePi", uint32(NodePI))
	classEnumeration(xmlNodeClass, "NodeDeclaration", uint32(NodeDeclaration))
	classEnumeration(xmlNodeClass, "NodeDoctype", uint32(NodeDoctype))

	nodeProperty("NodeType", func(n *Node) (variant.Variant, error) {
		return variant.NewInt(int32(n.kind)), nil
	}, nil)
	nodeProperty("Name", func(n *Node) (variant.Variant, error) {
		return variant.NewString(n.name), nil
	}, func(n *Node, v variant.Variant) error {
		name, err := v.AsString()
		if err != nil {
			return err
		}
		return n.SetName(name)
	})
	nodeProperty("Value", func(n *Node) (variant.Variant, error) {
		return variant.NewString(n.value), nil
	}, func(n *Node, v variant.Variant) error {
		value, err := v.AsString()
		if err != nil {
			return err
		}
		return n.SetValue(value)
	})
	nodeProperty("Text", func(n *Node) (variant.Variant, error) {
		return variant.NewString(n.Text()), nil
	}, func(n *Node, v variant.Variant) error {
		text, err := v.AsString()
		if err != nil {
			return err
		}
		return n.SetText(text)
	})
	nodeProperty("Path", func(n *Node) (variant.Variant, error) {
		return variant.NewString(n.Path()), nil
	}, nil)
	nodeProperty("Parent", func(n *Node) (variant.Variant, error) {
		return nodeVariant(n.parent), nil
	}, nil)
	nodeProperty("FirstChild", func(n *Node) (variant.Variant, error) {
		return nodeVariant(n.firstChild), nil
	}, nil)
	nodeProperty("LastChild", func(n *Node) (variant.Variant, error) {
		return nodeVariant(n.lastChild), nil
	}, nil)
	nodeProperty("NextSibling", func(n *Node) (variant.Variant, error) {
		return nodeVariant(n.NextSibling()), nil
	}, nil)
	nodeProperty("PreviousSibling", func(n *Node) (variant.Variant, error) {
		return nodeVariant(n.PreviousSibling()), nil
	}, nil)
	nodeProperty("HasChildren", func(n *Node) (variant.Variant, error) {
		return variant.NewBool(n.HasChildren()), nil
	}, nil)
	nodeProperty("AllAttributeNames", func(n *Node) (variant.Variant, error) {
		return variant.NewStringCollection(n.AttributeNames()), nil
	}, nil)
	nodeProperty("AllChildren", func(n *Node) (variant.Variant, error) {
		children := n.Children()
		items := make([]variant.Variant, len(children))
		for i, c := range children {
			items[i] = variant.NewObject(c)
		}
		return variant.NewVariantCollection(items), nil
	}, nil)

	nodeService("IsChildPresent", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewBool(n.IsChildPresent(name)), nil
	})
	nodeService("GetChild", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		return nodeVariant(n.Child(name)), nil
	})
	nodeService("GetExistingChild", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		c, err := n.ExistingChild(name)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewObject(c), nil
	})
	nodeService("IsAttributePresent", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewBool(n.IsAttributePresent(name)), nil
	})
	nodeService("GetAttribute", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		value, err := n.ExistingAttribute(name)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewString(value), nil
	})
	nodeService("SetAttribute", 2, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		value, err := args[1].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewBool(n.SetAttribute(name, value)), nil
	})
	nodeService("RemoveAttribute", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewBool(n.RemoveAttribute(name)), nil
	})
	nodeService("RemoveAllAttributes", 0, func(n *Node, _ []variant.Variant) (variant.Variant, error) {
		n.RemoveAllAttributes()
		return variant.NewEmpty(), nil
	})
	nodeService("AppendChild", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		kind, err := args[0].AsInt()
		if err != nil {
			return variant.Variant{}, err
		}
		c, err := n.AppendChild(Kind(kind))
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewObject(c), nil
	})
	nodeService("AppendChildElement", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		name, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		c, err := n.AppendChildElement(name)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewObject(c), nil
	})
	nodeService("RemoveAllChildren", 0, func(n *Node, _ []variant.Variant) (variant.Variant, error) {
		n.RemoveAllChildren()
		return variant.NewEmpty(), nil
	})
	nodeService("GetFirstElementByPath", 1, func(n *Node, args []variant.Variant) (variant.Variant, error) {
		path, err := args[0].AsString()
		if err != nil {
			return variant.Variant{}, err
		}
		return nodeVariant(n.FirstElementByPath(path)), nil
	})

	classEnumeration(xmlDocumentClass, "ParsePi", ParsePI)
	classEnumeration(xmlDocumentClass, "ParseComments", ParseComments)
	classEnumeration(xmlDocumentClass, "ParseCdata", ParseCDATA)
	classEnumeration(xmlDocumentClass, "ParseWsPcdata", ParseWsPCDATA)
	classEnumeration(xmlDocumentClass, "ParseEscapes", ParseEscapes)
	classEnumeration(xmlDocumentClass, "ParseEol", ParseEol)
	classEnumeration(xmlDocumentClass, "ParseWconvAttribute", ParseWconvAttribute)
	classEnumeration(xmlDocumentClass, "ParseWnormAttribute", ParseWnormAttribute)
	classEnumeration(xmlDocumentClass, "ParseDeclaration", ParseDeclaration)
	classEnumeration(xmlDocumentClass, "ParseDoctype", ParseDoctype)
	classEnumeration(xmlDocumentClass, "ParseTrimPcdata", ParseTrimPCDATA)
	classEnumeration(xmlDocumentClass, "ParseMaskMinimal", ParseMinimal)
	classEnumeration(xmlDocumentClass, "ParseMaskDefault", ParseMaskDefault)
	classEnumeration(xmlDocumentClass, "ParseMaskFull", ParseMaskFull)
	classEnumeration(xmlDocumentClass, "FormatIndent", FormatIndent)
	classEnumeration(xmlDocumentClass, "FormatWriteBom", FormatWriteBom)
	classEnumeration(xmlDocumentClass, "FormatRaw", FormatRaw)
	classEnumeration(xmlDocumentClass, "FormatNoDeclaration", FormatNoDeclaration)
	classEnumeration(xmlDocumentClass, "FormatMaskDefault", FormatMaskDefault)

	xmlDocumentClass.AddProperty(&class.Property{
		Name: "ParseMask",
		Get: func(self variant.Object) (variant.Variant, error) {
			d, err := asDocument(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewUInt(d.ParseMask()), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			d, err := asDocument(self)
			if err != nil {
				return err
			}
			mask, err := v.AsUInt()
			if err != nil {
				return err
			}
			d.SetParseMask(mask)
			return nil
		},
	})
	xmlDocumentClass.AddProperty(&class.Property{
		Name: "FormatMask",
		Get: func(self variant.Object) (variant.Variant, error) {
			d, err := asDocument(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewUInt(d.FormatMask()), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			d, err := asDocument(self)
			if err != nil {
				return err
			}
			mask, err := v.AsUInt()
			if err != nil {
				return err
			}
			d.SetFormatMask(mask)
			return nil
		},
	})
	xmlDocumentClass.AddProperty(&class.Property{
		Name: "IndentationSequence",
		Get: func(self variant.Object) (variant.Variant, error) {
			d, err := asDocument(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewString(d.IndentationSequence()), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			d, err := asDocument(self)
			if err != nil {
				return err
			}
			s, err := v.AsString()
			if err != nil {
				return err
			}
			d.SetIndentationSequence(s)
			return nil
		},
	})
	xmlDocumentClass.AddProperty(&class.Property{
		Name: "PathDelimiter",
		Get: func(self variant.Object) (variant.Variant, error) {
			d, err := asDocument(self)
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewChar(d.PathDelimiter()), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			d, err := asDocument(self)
			if err != nil {
				return err
			}
			c, err := v.AsChar()
			if err != nil {
				return err
			}
			d.SetPathDelimiter(c)
			return nil
		},
	})
	xmlDocumentClass.AddProperty(&class.Property{
		Name: "AsString",
		Get: func(self variant.Object) (variant.Variant, error) {
			d, err := asDocument(self)
			if err != nil {
				return variant.Variant{}, err
			}
			s, err := d.AsString()
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewString(s), nil
		},
	})

	xmlDocumentClass.Service("Clear").AddOverload(0, func(self variant.Object, _ []variant.Variant) (variant.Variant, error) {
		d, err := asDocument(self)
		if err != nil {
			return variant.Variant{}, err
		}
		d.Clear()
		return variant.NewEmpty(), nil
	})
	xmlDocumentClass.Service("Read").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		d, err := asDocument(self)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), d.Read(args[0])
	})
	xmlDocumentClass.Service("Write").AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		d, err := asDocument(self)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewEmpty(), d.Write(args[0])
	})
	xmlDocumentClass.Service("New").AddOverload(0, func(variant.Object, []variant.Variant) (variant.Variant, error) {
		return variant.NewObject(New()), nil
	})
	xmlDocumentClass.Service("New").AddOverload(1, func(_ variant.Object, args []variant.Variant) (variant.Variant, error) {
		d := New()
		if err := d.Read(args[0]); err != nil {
			return variant.Variant{}, err
		}
		return variant.NewObject(d), nil
	})

	for _, d := range []*class.Descriptor{xmlNodeClass, xmlDocumentClass} {
		if err := class.Register(d); err != nil {
			panic(err)
		}
	}
}
