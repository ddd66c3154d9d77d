package vm

// ---------------------------------------------------------------------------
// Class handles
// ---------------------------------------------------------------------------

// Class is a resolved class handle. Resolution and initialization happen in
// the collaborators; the dispatch loop only consults identity, the
// superclass chain, implemented interfaces, and (for arrays) the component
// class.
type Class struct {
	Descriptor string
	Super      *Class
	Interfaces []*Class
	Component  *Class // element class for array classes, nil otherwise
}

// IsArray reports whether the class describes an array type.
func (c *Class) IsArray() bool { return c.Component != nil }

// IsAssignableFrom reports whether a value of class o can be stored where a
// value of class c is expected: same class, a subclass, or an implementor
// of c anywhere up o's superclass chain.
func (c *Class) IsAssignableFrom(o *Class) bool {
	for s := o; s != nil; s = s.Super {
		if s == c {
			return true
		}
		for _, iface := range s.Interfaces {
			if iface == c || c.IsAssignableFrom(iface) {
				return true
			}
		}
	}
	return false
}

// InstanceOf reports whether o is a non-null instance of c.
func (c *Class) InstanceOf(o Object) bool {
	return o != nil && c.IsAssignableFrom(o.GetClass())
}

func (c *Class) String() string { return c.Descriptor }

// Classes are objects too (const-class loads one into a register).
func (c *Class) GetClass() *Class { return c }
