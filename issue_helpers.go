package modeldict

import "github.com/modeldict/modeldict-go/i18n"

func missingKeyIssue(key string) Issues {
	return Issues{{
		Path:    "/" + key,
		Code:    CodeMissingKey,
		Message: i18n.T(CodeMissingKey, map[string]string{"key": key}),
		Params:  map[string]any{"key": key},
	}}
}

func frozenIssue(key string) Issues {
	return Issues{{
		Path:    "/" + key,
		Code:    CodeFrozen,
		Message: i18n.T(CodeFrozen, nil),
		Params:  map[string]any{"key": key},
	}}
}

func unknownKeyIssue(key string) Issue {
	return Issue{
		Path:    "/" + key,
		Code:    CodeUnknownKey,
		Message: i18n.T(CodeUnknownKey, nil),
		Params:  map[string]any{"key": key},
	}
}

// rebaseIssues prefixes child issue paths with /key so field-level errors keep
// their record-relative location.
func rebaseIssues(key string, err error) Issues {
	if err == nil {
		return nil
	}
	base := "/" + key
	child, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		out = append(out, Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause, Params: it.Params})
	}
	return out
}
