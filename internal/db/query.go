package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// countDocuments iterates a query and counts its documents. Shared by every
// repository's Count path. Fine for the collection sizes this dashboard
// serves; aggregation queries would be the next step for large datasets.
func countDocuments(ctx context.Context, query firestore.Query) (int, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to iterate documents for counting: %w", err)
		}
		count++
	}
	return count, nil
}
