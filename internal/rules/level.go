package rules

import (
	"github.com/rs/zerolog/log"

	"github.com/allocrun/allocrun/internal/frame"
	"github.com/allocrun/allocrun/internal/levelrel"
)

func init() {
	register(Definition{
		Name: "level_relationship",
		Description: "Walk-forward regression of price change on lagged research, " +
			"sized with the Kelly criterion.",
		Series:    []string{frame.ColResearch1},
		NewParams: func() any { return &levelrel.Params{} },
		Apply: func(f *frame.Frame, params any) (any, error) {
			p := params.(*levelrel.Params)
			res, err := levelrel.New(*p, log.Logger).Run(f)
			if err != nil {
				return nil, err
			}
			return res, nil
		},
	})
}
