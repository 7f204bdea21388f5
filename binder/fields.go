package binder

import (
	"math"

	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-jsonstream.v1/jreader"
	"gopkg.in/launchdarkly/go-jsonstream.v1/jwriter"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// The helpers below implement the shared field policy for optional values. Undefined values
// are never written, and a JSON null reads as undefined, so a round trip through JSON cannot
// turn "absent" into a zero value.

func WriteString(obj *jwriter.ObjectState, name string, value ldvalue.OptionalString) {
	if value.IsDefined() {
		obj.Name(name).String(value.StringValue())
	}
}

func WriteInt(obj *jwriter.ObjectState, name string, value ldvalue.OptionalInt) {
	if value.IsDefined() {
		obj.Name(name).Int(value.IntValue())
	}
}

func ReadString(r *jreader.Reader) ldvalue.OptionalString {
	if s, nonNull := r.StringOrNull(); nonNull {
		return ldvalue.NewOptionalString(s)
	}
	return ldvalue.OptionalString{}
}

// maxExactInt is the largest magnitude at which every integer has an exact float64 form.
const maxExactInt = 1 << 53

// ReadInt reads an integer. A number with a fractional part, or one too large to be read
// exactly, puts the reader into a failed state instead of being rounded.
func ReadInt(r *jreader.Reader) ldvalue.OptionalInt {
	f, nonNull := r.Float64OrNull()
	if !nonNull {
		return ldvalue.OptionalInt{}
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		r.AddError(errors.Errorf("expected an integer but got %v", f))
		return ldvalue.OptionalInt{}
	}
	return ldvalue.NewOptionalInt(int(f))
}
