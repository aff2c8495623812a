package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// resolveFamily picks the tag family and symbol for new tags. An explicit
// opts.Family wins; otherwise exactly one family of opts.TagCategory must
// match opts.FamilyPatterns, or opts.ChooseFamily decides between several.
// chosen reports whether the chooser was used.
func resolveFamily(s *scene.Scene, opts Options) (family scene.TagFamily, symbol string, chosen bool, err error) {
	if opts.Family != "" {
		family, err = s.FindFamily(opts.Family)
		if err != nil {
			return family, "", false, err
		}
	} else {
		matches := s.MatchFamilies(opts.TagCategory, opts.FamilyPatterns...)
		switch len(matches) {
		case 0:
			return family, "", false, errors.New(errors.ErrCodeFamilyNotFound,
				"no %s family matches %s", opts.TagCategory, quoteAll(opts.FamilyPatterns))
		case 1:
			family = matches[0]
		default:
			if opts.ChooseFamily == nil {
				return family, "", false, errors.New(errors.ErrCodeFamilyNotFound,
					"%d tag families match: %s; pick one with --family",
					len(matches), quoteAll(scene.FamilyNames(matches)))
			}
			family, err = opts.ChooseFamily(matches)
			if err != nil {
				return family, "", true, fmt.Errorf("choose tag family: %w", err)
			}
			chosen = true
		}
	}

	symbol, err = family.FirstSymbol()
	if err != nil {
		return family, "", chosen, err
	}
	return family, symbol, chosen, nil
}

func quoteAll(names []string) string {
	return strings.Join(lo.Map(names, func(n string, _ int) string { return strconv.Quote(n) }), ", ")
}
