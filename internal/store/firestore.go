package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Store represents a connection to the Firestore database.
type Store struct {
	client *firestore.Client
}

// ServerConfig stores Discord server configuration.
type ServerConfig struct {
	FeedChannelID string    `firestore:"feed_channel_id"`
	PingChannelID string    `firestore:"ping_channel_id"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

// Pattern kinds.
const (
	KindRegex         = "regex"
	KindStructure     = "structure"
	KindPronounceable = "pronounceable"
)

// Pattern is a single user's saved domain-watch rule. The pattern text of a
// regex-kind pattern has already passed the safety validator by the time it
// reaches this collection; the store never persists an unvalidated regex.
type Pattern struct {
	ID          string    `firestore:"-"`
	UserID      string    `firestore:"user_id"`
	ServerID    string    `firestore:"server_id"`
	Pattern     string    `firestore:"pattern"`
	Kind        string    `firestore:"kind"` // "regex", "structure", or "pronounceable"
	TLDFilter   string    `firestore:"tld_filter,omitempty"`
	MaxPrice    float64   `firestore:"max_price,omitempty"`
	Enabled     bool      `firestore:"enabled"`
	Description string    `firestore:"description,omitempty"`
	CreatedAt   time.Time `firestore:"created_at"`
}

// ComparableSale is an immutable market observation: a historical domain sale
// used as valuation evidence. The pipeline only ever appends these.
type ComparableSale struct {
	DomainName string     `firestore:"domain_name"`
	TLD        string     `firestore:"tld,omitempty"`
	SalePrice  float64    `firestore:"sale_price"`
	SaleDate   *time.Time `firestore:"sale_date,omitempty"`
	Venue      string     `firestore:"venue,omitempty"`
}

// ListingRecord maps an auction listing ID to the Discord messages it
// produced, so sold/closed updates can edit them later.
type ListingRecord struct {
	ListingID  string            `firestore:"listing_id"`
	Domain     string            `firestore:"domain"`
	ServerMsgs map[string]string `firestore:"server_msgs"` // serverID -> messageID
	PostedAt   time.Time         `firestore:"posted_at"`
}

// NewStore initializes a new Firestore client using application default credentials.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close closes the Firestore client.
func (s *Store) Close() error {
	return s.client.Close()
}

// --- Server Configs ---

// SaveServerConfig saves or updates the feed and ping channels for a given Discord server.
func (s *Store) SaveServerConfig(ctx context.Context, serverID string, cfg ServerConfig) error {
	cfg.UpdatedAt = time.Now()
	_, err := s.client.Collection("servers").Doc(serverID).Set(ctx, cfg)
	return err
}

// GetServerConfig retrieves the server config for a given Discord server ID.
func (s *Store) GetServerConfig(ctx context.Context, serverID string) (*ServerConfig, error) {
	doc, err := s.client.Collection("servers").Doc(serverID).Get(ctx)
	if err != nil {
		return nil, err
	}
	var cfg ServerConfig
	if err := doc.DataTo(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --- Patterns ---

// AddPattern adds a new watch pattern for a user on a specific server.
func (s *Store) AddPattern(ctx context.Context, p Pattern) error {
	p.CreatedAt = time.Now()
	_, _, err := s.client.Collection("patterns").Add(ctx, p)
	return err
}

// GetUserPatterns retrieves all patterns for a specific user on a specific server.
func (s *Store) GetUserPatterns(ctx context.Context, serverID, userID string) ([]Pattern, error) {
	var patterns []Pattern
	iter := s.client.Collection("patterns").
		Where("server_id", "==", serverID).
		Where("user_id", "==", userID).
		Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p Pattern
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = doc.Ref.ID
		patterns = append(patterns, p)
	}

	// Sort descending by creation time in memory to avoid needing a Firestore composite index
	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].CreatedAt.After(patterns[j].CreatedAt)
	})

	return patterns, nil
}

// DeletePattern removes a pattern by its Firestore document ID.
func (s *Store) DeletePattern(ctx context.Context, docID string) error {
	_, err := s.client.Collection("patterns").Doc(docID).Delete(ctx)
	return err
}

// DeleteAllUserPatterns removes every pattern a specific user has saved on a given server.
func (s *Store) DeleteAllUserPatterns(ctx context.Context, serverID, userID string) error {
	patterns, err := s.GetUserPatterns(ctx, serverID, userID)
	if err != nil {
		return err
	}

	batch := s.client.Batch()
	for _, p := range patterns {
		ref := s.client.Collection("patterns").Doc(p.ID)
		batch.Delete(ref)
	}

	if len(patterns) > 0 {
		_, err = batch.Commit(ctx)
		return err
	}
	return nil
}

// GetAllPatterns retrieves all patterns across all servers. The sweep pipeline
// loads these once per run and evaluates them in memory.
func (s *Store) GetAllPatterns(ctx context.Context) ([]Pattern, error) {
	var patterns []Pattern
	iter := s.client.Collection("patterns").Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p Pattern
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = doc.Ref.ID
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// --- Comparable Sales ---

// ListComparableSales returns up to limit comparable sales ordered by sale
// price descending. The valuation comp cache is the only caller.
func (s *Store) ListComparableSales(ctx context.Context, limit int) ([]ComparableSale, error) {
	var comps []ComparableSale
	iter := s.client.Collection("comparable_sales").
		OrderBy("sale_price", firestore.Desc).
		Limit(limit).
		Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var c ComparableSale
		if err := doc.DataTo(&c); err != nil {
			continue // skip malformed
		}
		comps = append(comps, c)
	}
	return comps, nil
}

// AddComparableSales appends a batch of comparable sales. Callers are expected
// to invalidate the comp cache afterwards so the new evidence is visible
// before the TTL elapses.
func (s *Store) AddComparableSales(ctx context.Context, comps []ComparableSale) error {
	if len(comps) == 0 {
		return nil
	}

	batch := s.client.Batch()
	queued := 0
	for _, c := range comps {
		ref := s.client.Collection("comparable_sales").NewDoc()
		batch.Set(ref, c)
		queued++

		// Firestore batches are limited to 500 operations.
		if queued == 500 {
			if _, err := batch.Commit(ctx); err != nil {
				return err
			}
			batch = s.client.Batch()
			queued = 0
		}
	}

	if queued > 0 {
		_, err := batch.Commit(ctx)
		return err
	}
	return nil
}

// --- Listings ---

// SaveListingRecords stores the mapping between an auction listing and the
// Discord messages it generated, one message per server.
func (s *Store) SaveListingRecords(ctx context.Context, listingID, domain string, serverMsgs map[string]string) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := s.client.Collection("listings").Doc(listingID)
		return tx.Set(ref, ListingRecord{
			ListingID:  listingID,
			Domain:     domain,
			ServerMsgs: serverMsgs,
			PostedAt:   time.Now(),
		})
	})
}

// GetListingRecord retrieves a listing record to find the Discord messages it produced.
func (s *Store) GetListingRecord(ctx context.Context, listingID string) (*ListingRecord, error) {
	doc, err := s.client.Collection("listings").Doc(listingID).Get(ctx)
	if err != nil {
		return nil, err
	}
	var lr ListingRecord
	if err := doc.DataTo(&lr); err != nil {
		return nil, err
	}
	return &lr, nil
}

// TrimOldListings hard-deletes listing records older than the 500 most recent
// ones to keep the collection lean.
func (s *Store) TrimOldListings(ctx context.Context) error {
	iter := s.client.Collection("listings").
		OrderBy("posted_at", firestore.Desc).
		Documents(ctx)

	count := 0
	batch := s.client.Batch()
	docsToDelete := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// Trimming isn't critical, it'll just try again next sweep.
			return err
		}

		count++
		if count > 500 {
			batch.Delete(doc.Ref)
			docsToDelete++

			// Firestore batches are limited to 500 operations.
			if docsToDelete == 500 {
				if _, err := batch.Commit(ctx); err != nil {
					return err
				}
				batch = s.client.Batch()
				docsToDelete = 0
			}
		}
	}

	if docsToDelete > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return err
		}
	}

	return nil
}
