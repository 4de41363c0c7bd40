package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

func TestRecommend(t *testing.T) {
	advisor := New(zap.NewNop())

	t.Run("saas gets software application", func(t *testing.T) {
		recs := advisor.Recommend(types.BusinessSaaS, nil)
		require.NotEmpty(t, recs)

		schemaTypes := make([]string, 0, len(recs))
		for _, rec := range recs {
			schemaTypes = append(schemaTypes, rec.SchemaType)
		}
		assert.Contains(t, schemaTypes, "SoftwareApplication")
		assert.Contains(t, schemaTypes, "FAQPage")
		assert.NotContains(t, schemaTypes, "Product")
	})

	t.Run("ecommerce gets product", func(t *testing.T) {
		recs := advisor.Recommend(types.BusinessEcommerce, nil)
		schemaTypes := make([]string, 0, len(recs))
		for _, rec := range recs {
			schemaTypes = append(schemaTypes, rec.SchemaType)
		}
		assert.Contains(t, schemaTypes, "Product")
		assert.NotContains(t, schemaTypes, "SoftwareApplication")
	})

	t.Run("sorted by weight descending", func(t *testing.T) {
		recs := advisor.Recommend(types.BusinessBlog, nil)
		for i := 1; i < len(recs); i++ {
			assert.GreaterOrEqual(t, recs[i-1].TrendWeight, recs[i].TrendWeight)
		}
	})

	t.Run("present types damped and marked", func(t *testing.T) {
		absent := advisor.Recommend(types.BusinessLocalBusiness, nil)
		present := advisor.Recommend(types.BusinessLocalBusiness, []string{"LocalBusiness"})

		var absentWeight, presentWeight float64
		var marked bool
		for _, rec := range absent {
			if rec.SchemaType == "LocalBusiness" {
				absentWeight = rec.TrendWeight
			}
		}
		for _, rec := range present {
			if rec.SchemaType == "LocalBusiness" {
				presentWeight = rec.TrendWeight
				marked = rec.AlreadyPresent
			}
		}

		require.NotZero(t, absentWeight)
		require.NotZero(t, presentWeight)
		assert.True(t, marked)
		assert.Less(t, presentWeight, absentWeight)
	})

	t.Run("recency shapes the effective weight", func(t *testing.T) {
		recs := advisor.Recommend(types.BusinessBlog, nil)
		found := false
		for _, rec := range recs {
			if rec.SchemaType == "Article" {
				found = true
				assert.Equal(t, round2(0.75*0.9*absentBoost), rec.TrendWeight)
			}
		}
		require.True(t, found)
	})

	t.Run("capped at five", func(t *testing.T) {
		recs := advisor.Recommend(types.BusinessSaaS, nil)
		assert.LessOrEqual(t, len(recs), maxRecommendations)
	})

	t.Run("deterministic", func(t *testing.T) {
		first := advisor.Recommend(types.BusinessServices, []string{"Organization"})
		second := advisor.Recommend(types.BusinessServices, []string{"Organization"})
		assert.Equal(t, first, second)
	})

	t.Run("unknown business still recommends universals", func(t *testing.T) {
		recs := advisor.Recommend(types.BusinessUnknown, nil)
		schemaTypes := make([]string, 0, len(recs))
		for _, rec := range recs {
			schemaTypes = append(schemaTypes, rec.SchemaType)
		}
		assert.Contains(t, schemaTypes, "Organization")
		assert.Contains(t, schemaTypes, "FAQPage")
	})
}

func TestBaseWeight(t *testing.T) {
	assert.Equal(t, 0.95, BaseWeight("FAQPage"))
	assert.Zero(t, BaseWeight("NotARealType"))
}
