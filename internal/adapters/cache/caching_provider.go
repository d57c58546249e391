package cache

import (
	"context"

	"dispatch-planner-service/internal/ports"

	"github.com/rs/zerolog"
)

// CachingMatrixProvider decorates a TravelMatrixProvider with a pairwise
// cache. When every off-diagonal cell is cached the matrix is assembled
// locally without an external call; otherwise the full matrix is fetched and
// OK cells are written back. Cache failures degrade to the inner provider.
type CachingMatrixProvider struct {
	Inner ports.TravelMatrixProvider
	Cache ports.MatrixCache
}

func NewCachingMatrixProvider(inner ports.TravelMatrixProvider, cache ports.MatrixCache) *CachingMatrixProvider {
	return &CachingMatrixProvider{Inner: inner, Cache: cache}
}

func (c *CachingMatrixProvider) GetMatrix(ctx context.Context, req ports.MatrixRequest) (*ports.TravelMatrix, error) {
	if c.Cache == nil {
		return c.Inner.GetMatrix(ctx, req)
	}

	logger := zerolog.Ctx(ctx)

	pairs := make([]ports.AddressPair, 0, len(req.Addresses)*(len(req.Addresses)-1))
	for i, from := range req.Addresses {
		for j, to := range req.Addresses {
			if i == j {
				continue
			}
			pairs = append(pairs, ports.AddressPair{Origin: from, Destination: to})
		}
	}

	hits, err := c.Cache.GetElements(ctx, req.AvoidTolls, pairs)
	if err != nil {
		logger.Warn().Err(err).Msg("matrix cache read failed")
		hits = nil
	}

	if len(hits) == len(pairs) {
		out := &ports.TravelMatrix{Status: "OK"}
		out.Rows = make([][]ports.MatrixElement, len(req.Addresses))
		for i, from := range req.Addresses {
			out.Rows[i] = make([]ports.MatrixElement, len(req.Addresses))
			for j, to := range req.Addresses {
				if i == j {
					out.Rows[i][j] = ports.MatrixElement{Status: ports.ElementStatusOK}
					continue
				}
				out.Rows[i][j] = hits[ports.AddressPair{Origin: from, Destination: to}]
			}
		}
		return out, nil
	}

	matrix, err := c.Inner.GetMatrix(ctx, req)
	if err != nil {
		return nil, err
	}

	fresh := make(map[ports.AddressPair]ports.MatrixElement)
	for i, row := range matrix.Rows {
		for j, el := range row {
			if i == j || el.Status != ports.ElementStatusOK {
				continue
			}
			fresh[ports.AddressPair{Origin: req.Addresses[i], Destination: req.Addresses[j]}] = el
		}
	}

	if err := c.Cache.PutElements(ctx, req.AvoidTolls, fresh); err != nil {
		logger.Warn().Err(err).Msg("matrix cache write failed")
	}

	return matrix, nil
}
