// Package reconcile classifies a widget re-render as a no-op, a reconfiguration
// or a rebuild.
//
// The decision is made from two cheap inputs rather than a tree diff: the
// component-type tag on the widget root and the structural signature of its
// labeled parts. The Classifier keeps a single slot of history for each.
package reconcile

import "github.com/vango-dev/widgethook/pkg/fingerprint"

// Verdict is the outcome of classifying one render.
type Verdict uint8

const (
	// NoChange keeps the live instance; its options are still merged.
	NoChange Verdict = iota
	// Reconfigure keeps the live instance and merges its options.
	Reconfigure
	// Rebuild destroys the live instance and attaches a new one.
	Rebuild
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case NoChange:
		return "no_change"
	case Reconfigure:
		return "reconfigure"
	case Rebuild:
		return "rebuild"
	default:
		return "unknown"
	}
}

// KeepsInstance reports whether the verdict keeps the live instance.
func (v Verdict) KeepsInstance() bool {
	return v == NoChange || v == Reconfigure
}

// Reason explains why a verdict was reached.
type Reason uint8

const (
	// ReasonBaseline: first observation, the signature became the baseline.
	ReasonBaseline Reason = iota
	// ReasonUnchanged: the signature matched the previous one.
	ReasonUnchanged
	// ReasonStructureChanged: the signature differed from the previous one.
	ReasonStructureChanged
	// ReasonTypeChanged: the component type differs from the recorded one.
	ReasonTypeChanged
	// ReasonPreserved: the render asked to preserve state.
	ReasonPreserved
	// ReasonRecovery: the options merge failed and the instance was rebuilt.
	ReasonRecovery
	// ReasonInactive: there was no live instance, the render was ignored.
	ReasonInactive
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonBaseline:
		return "baseline"
	case ReasonUnchanged:
		return "unchanged"
	case ReasonStructureChanged:
		return "structure_changed"
	case ReasonTypeChanged:
		return "type_changed"
	case ReasonPreserved:
		return "preserved"
	case ReasonRecovery:
		return "recovery"
	case ReasonInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Decision is a verdict together with its reason.
type Decision struct {
	Verdict Verdict
	Reason  Reason
}

// String renders the decision as "verdict(reason)".
func (d Decision) String() string {
	return d.Verdict.String() + "(" + d.Reason.String() + ")"
}

// Preserve applies the preserve-state override: the instance is kept and
// reconfigured whatever the structure did. A type change is not overridable,
// a live instance never outlives a change of its component type.
func Preserve(d Decision) Decision {
	if d.Reason == ReasonTypeChanged {
		return d
	}
	return Decision{Verdict: Reconfigure, Reason: ReasonPreserved}
}

// Classifier remembers the previous component type and signature.
// The zero value has both slots unset.
type Classifier struct {
	tag    string
	hasTag bool
	sig    fingerprint.Signature
	hasSig bool
}

// Baseline records the component type an instance was just attached with and
// clears the signature slot, so the next render establishes a new baseline.
func (c *Classifier) Baseline(tag string) {
	c.tag = tag
	c.hasTag = true
	c.sig = nil
	c.hasSig = false
}

// Reset clears both slots.
func (c *Classifier) Reset() {
	*c = Classifier{}
}

// Tag returns the recorded component type.
func (c *Classifier) Tag() (string, bool) {
	return c.tag, c.hasTag
}

// Signature returns the recorded signature.
func (c *Classifier) Signature() (fingerprint.Signature, bool) {
	return c.sig, c.hasSig
}

// Classify decides what to do with a render that carries tag and sig.
//
// A missing or different recorded tag is a rebuild. Otherwise the first
// signature seen is only recorded, and later ones are compared with the
// previous render's. The current tag and signature always replace the recorded
// ones, whatever the verdict.
func (c *Classifier) Classify(tag string, sig fingerprint.Signature) Decision {
	if !c.hasTag || c.tag != tag {
		c.tag = tag
		c.hasTag = true
		return Decision{Verdict: Rebuild, Reason: ReasonTypeChanged}
	}

	if !c.hasSig {
		c.sig = sig
		c.hasSig = true
		return Decision{Verdict: NoChange, Reason: ReasonBaseline}
	}

	prev := c.sig
	c.sig = sig
	if prev.Equal(sig) {
		return Decision{Verdict: NoChange, Reason: ReasonUnchanged}
	}
	return Decision{Verdict: Rebuild, Reason: ReasonStructureChanged}
}
