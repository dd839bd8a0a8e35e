package compctx

import (
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// ValidateMain reports SIG008 if the registered main function's parameter
// and return shape is not one of the allowed forms:
// `() -> Void`, `() -> Int`, `(Int, **Int8) -> Void`, or
// `(Int, **Int8) -> Int`. Resolved parameter/return types are supplied by
// the caller (sema), since registration time only has parse-time syntax.
func (c *Context) ValidateMain(paramTypes []dtype.Type, retType dtype.Type) {
	if c.mainFunction == nil {
		return
	}
	validNoArgs := len(paramTypes) == 0
	validWithArgs := len(paramTypes) == 2 &&
		isIntType(paramTypes[0]) &&
		isCharStarStar(paramTypes[1])
	if !validNoArgs && !validWithArgs {
		c.Diagnostics.Errorf(codes.SIG008, primaryLoc(c.mainFunction),
			"main must be () -> Void, () -> Int, (Int, **Int8) -> Void, or (Int, **Int8) -> Int")
		return
	}
	if retType != nil {
		if _, isVoid := retType.(*dtype.Void); !isVoid {
			if !isIntType(retType) {
				c.Diagnostics.Errorf(codes.SIG008, primaryLoc(c.mainFunction),
					"main must return Void or Int, got %s", retType)
			}
		}
	}
}

func isIntType(t dtype.Type) bool {
	i, ok := t.(*dtype.Int)
	return ok && i.Width == dtype.Width64 && i.Signed
}

func isCharStarStar(t dtype.Type) bool {
	p1, ok := t.(*dtype.Pointer)
	if !ok {
		return false
	}
	p2, ok := p1.Elem.(*dtype.Pointer)
	if !ok {
		return false
	}
	i, ok := p2.Elem.(*dtype.Int)
	return ok && i.Width == dtype.Width8 && i.Signed
}
