package processor

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/bkellow/domainhawk/internal/ai"
	"github.com/bkellow/domainhawk/internal/auction"
	"github.com/bkellow/domainhawk/internal/store"
	"github.com/bkellow/domainhawk/internal/valuation"
)

// MockStore implements Storer using testify/mock
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetAllPatterns(ctx context.Context) ([]store.Pattern, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Pattern), args.Error(1)
}
func (m *MockStore) GetListingRecord(ctx context.Context, listingID string) (*store.ListingRecord, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ListingRecord), args.Error(1)
}
func (m *MockStore) SaveListingRecords(ctx context.Context, listingID, domain string, serverMsgs map[string]string) error {
	args := m.Called(ctx, listingID, domain, serverMsgs)
	return args.Error(0)
}
func (m *MockStore) TrimOldListings(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockStore) GetServerConfig(ctx context.Context, serverID string) (*store.ServerConfig, error) {
	args := m.Called(ctx, serverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ServerConfig), args.Error(1)
}
func (m *MockStore) AddComparableSales(ctx context.Context, comps []store.ComparableSale) error {
	args := m.Called(ctx, comps)
	return args.Error(0)
}
func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

// MockAI implements AIService using testify/mock
type MockAI struct {
	mock.Mock
}

func (m *MockAI) CleanListing(ctx context.Context, domain, sellerNotes string) (*ai.CleanedListing, error) {
	args := m.Called(ctx, domain, sellerNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.CleanedListing), args.Error(1)
}
func (m *MockAI) Close() {
	m.Called()
}

// MockDiscord implements DiscordMessenger using testify/mock
type MockDiscord struct {
	mock.Mock
}

func (m *MockDiscord) SendMessage(channelID, content string) error {
	return m.Called(channelID, content).Error(0)
}
func (m *MockDiscord) SendEmbed(channelID string, content string, embed *discordgo.MessageEmbed) (string, error) {
	args := m.Called(channelID, content, embed)
	return args.String(0), args.Error(1)
}
func (m *MockDiscord) EditEmbed(channelID, messageID, content string, embed *discordgo.MessageEmbed) error {
	return m.Called(channelID, messageID, content, embed).Error(0)
}
func (m *MockDiscord) AddReaction(channelID, messageID, emoji string) error {
	return m.Called(channelID, messageID, emoji).Error(0)
}

// MockFeed implements FeedFetcher using testify/mock
type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) FetchNewestListings(ctx context.Context) ([]auction.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]auction.Listing), args.Error(1)
}

// MockValuer implements Valuer using testify/mock
type MockValuer struct {
	mock.Mock
}

func (m *MockValuer) Anchor(ctx context.Context, domain string, base valuation.QuickValuation) valuation.Anchored {
	args := m.Called(ctx, domain, base)
	return args.Get(0).(valuation.Anchored)
}

// MockInvalidator implements CompInvalidator using testify/mock
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate() {
	m.Called()
}
