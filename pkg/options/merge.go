package options

import "github.com/vango-dev/widgethook/pkg/widget"

// Merge parses payload and applies it to inst. On a parse error nothing is
// applied. Hooks the instance does not implement are skipped.
func Merge(inst widget.Instance, payload string) error {
	parsed, err := Parse(payload)
	if err != nil {
		return err
	}
	return Apply(inst, parsed)
}

// Apply merges already-parsed options into inst and runs its refresh hooks.
func Apply(inst widget.Instance, parsed widget.Options) error {
	if c, ok := inst.(widget.Configurable); ok {
		if err := widget.Call("SetOptions", func() {
			c.SetOptions(ShallowMerge(c.Options(), parsed))
		}); err != nil {
			return err
		}
	}

	if value, ok := parsed[ValueKey]; ok {
		if err := applyValue(inst, value); err != nil {
			return err
		}
	}

	if r, ok := inst.(widget.UIRefresher); ok {
		if err := widget.Call("UpdateUI", r.UpdateUI); err != nil {
			return err
		}
	}
	if r, ok := inst.(widget.PartsVisibilityRefresher); ok {
		if err := widget.Call("UpdatePartsVisibility", r.UpdatePartsVisibility); err != nil {
			return err
		}
	}
	return nil
}

func applyValue(inst widget.Instance, value any) error {
	holder, ok := inst.(widget.ValueCollectionHolder)
	if !ok {
		return nil
	}
	var coll widget.ValueCollection
	if err := widget.Call("Collection", func() { coll = holder.Collection() }); err != nil {
		return err
	}
	if coll == nil {
		return nil
	}
	if err := widget.Call("SetValues", func() { coll.SetValues(value) }); err != nil {
		return err
	}
	if s, ok := inst.(widget.ValueDisplaySyncer); ok {
		if err := widget.Call("UpdateValueDisplay", s.UpdateValueDisplay); err != nil {
			return err
		}
	}
	if s, ok := inst.(widget.HiddenInputSyncer); ok {
		if err := widget.Call("SyncHiddenInputs", s.SyncHiddenInputs); err != nil {
			return err
		}
	}
	return nil
}
