package functions

import (
	"strings"

	"github.com/knitlang/knit"
)

// cite is a three-pass bibliography pipeline: the first pass just counts
// how many cite() calls exist in the document, the second collects every
// call's citekey into one buffer, and the third runs that buffer through
// pandoc once (on its first call) and splices each call's own formatted
// citation back out of the result. references() stays Waiting until that
// formatted result exists and then returns everything after the citations
// the cite() calls consumed.
func cite(args []knit.Value[CustomValue], oldOutput knit.Value[CustomValue], storage *knit.Variables[CustomKey, CustomValue]) (knit.Dirty, knit.Value[CustomValue], error) {
	oldState := stateOf(storage)

	var state, id int
	switch {
	case oldState == 0 && oldOutput.IsNull():
		state, id = 0, 0
	case oldState == 0 && oldOutput.IsUsize():
		state, id = 1, oldOutput.Usize()
	case (oldState == 1 || oldState == 2) && oldOutput.IsUsize():
		state, id = 2, oldOutput.Usize()
	case (oldState == 1 || oldState == 2) && oldOutput.IsCustom():
		state, id = 3, oldOutput.Custom().Citation
	case (oldState == 3 || oldState == 4) && oldOutput.IsCustom():
		state, id = 4, oldOutput.Custom().Citation
	default:
		return knit.Waiting, knit.Value[CustomValue]{}, knit.FuncError("cite called out of sequence")
	}
	storage.Insert(KeyCiteState, knit.UsizeValue[CustomValue](state))

	if state == 1 {
		storage.Insert(KeyCitations, knit.TextValue[CustomValue](""))
	} else if state == 3 {
		citekeys, _ := storage.Get(KeyCitations)
		citerefs, err := pandocCite(citekeys.Text())
		if err != nil {
			return knit.Waiting, knit.Value[CustomValue]{}, err
		}
		storage.Insert(KeyCitations, knit.TextValue[CustomValue](citerefs))
	}

	switch state {
	case 0:
		count, _ := storage.Get(KeyCiteCount)
		n := usizeOf(count, 0)
		storage.Insert(KeyCiteCount, knit.UsizeValue[CustomValue](n+1))
		return knit.Waiting, knit.UsizeValue[CustomValue](n), nil
	case 1, 2:
		list, _ := storage.Get(KeyCitations)
		updated := list.Text() + args[0].Text() + "\n\n"
		storage.Insert(KeyCitations, knit.TextValue[CustomValue](updated))
		return knit.Waiting, knit.CustomValue[CustomValue](CustomValue{Citation: id}), nil
	default: // 3, 4
		citerefs, _ := storage.Get(KeyCitations)
		parts := strings.Split(citerefs.Text(), "\n\n")
		if id >= len(parts) {
			return knit.Waiting, knit.Value[CustomValue]{}, knit.FuncError("citation index out of range")
		}
		return knit.Ready, knit.TextValue[CustomValue](parts[id]), nil
	}
}

func references(args []knit.Value[CustomValue], _ knit.Value[CustomValue], storage *knit.Variables[CustomKey, CustomValue]) (knit.Dirty, knit.Value[CustomValue], error) {
	state := stateOf(storage)
	if state < 3 {
		return knit.Waiting, knit.TextValue[CustomValue](""), nil
	}
	count, _ := storage.Get(KeyCiteCount)
	n := usizeOf(count, 0)
	citerefs, _ := storage.Get(KeyCitations)
	parts := strings.Split(citerefs.Text(), "\n\n")
	if n > len(parts) {
		n = len(parts)
	}
	return knit.Ready, knit.TextValue[CustomValue](strings.Join(parts[n:], "\n\n")), nil
}

func stateOf(storage *knit.Variables[CustomKey, CustomValue]) int {
	v, ok := storage.Get(KeyCiteState)
	if !ok {
		return 0
	}
	return usizeOf(v, 0)
}

func pandocCite(citekey string) (string, error) {
	bibliography, err := fetchEnvVar("BIBLIOGRAPHY")
	if err != nil {
		return "", err
	}
	return runCommand("pandoc", citekey, []string{"--citeproc", "-t", "plain", "--bibliography", bibliography})
}
