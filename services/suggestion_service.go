package services

import (
	"context"
	"strings"
	"time"

	"github.com/levomgrup/sales-api/models"
	"github.com/levomgrup/sales-api/repository"
	"github.com/sirupsen/logrus"
)

type SuggestProductsInput struct {
	ProductIDs []string `json:"productIds"`
	Note       string   `json:"note"`
}

type SuggestCustomersInput struct {
	CustomerIDs []string `json:"customerIds"`
	Note        string   `json:"note"`
}

type ResolveSuggestionInput struct {
	Status       models.SuggestionStatus `json:"status"`
	ResponseNote string                  `json:"responseNote"`
}

// EntitySummary carries the display fields of a suggestion's source or target.
type EntitySummary struct {
	ID          string            `json:"id"`
	Type        models.EntityType `json:"type"`
	Name        string            `json:"name,omitempty"`
	Price       *float64          `json:"price,omitempty"`
	Description string            `json:"description,omitempty"`
	StoreName   string            `json:"storeName,omitempty"`
	Phone       string            `json:"phone,omitempty"`
}

type SuggestionView struct {
	models.Suggestion
	Source *EntitySummary `json:"source"`
	Target *EntitySummary `json:"target"`
}

// SuggestionService maintains customer/product suggestion links. Each link is
// stored as two mirrored records and every mutation writes both at once.
type SuggestionService struct {
	suggestions repository.SuggestionRepository
	customers   repository.CustomerRepository
	products    repository.ProductRepository
	log         *logrus.Logger
	now         func() time.Time
}

func NewSuggestionService(store repository.Store, log *logrus.Logger, now func() time.Time) *SuggestionService {
	if now == nil {
		now = time.Now
	}
	return &SuggestionService{
		suggestions: store.Suggestions(),
		customers:   store.Customers(),
		products:    store.Products(),
		log:         log,
		now:         now,
	}
}

// SuggestProductsToCustomer links every product in input to the customer. It
// fails without writing anything when one of the products does not exist.
func (s *SuggestionService) SuggestProductsToCustomer(ctx context.Context, customerID string, input SuggestProductsInput) ([]SuggestionView, error) {
	productIDs := uniqueIDs(input.ProductIDs)
	if len(productIDs) == 0 {
		return nil, validationFailed([]string{MsgProductIDsRequired})
	}
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, lookupError(err, MsgCustomerNotFound)
	}
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	if len(products) != len(productIDs) {
		return nil, notFound(MsgSomeProductsMissing)
	}

	note := strings.TrimSpace(input.Note)
	at := s.now()
	records := make([]models.Suggestion, 0, 2*len(productIDs))
	for _, productID := range productIDs {
		pair := models.NewSuggestionPair(customerID, productID, note, at)
		records = append(records, pair[:]...)
	}
	if err := s.suggestions.CreateMany(ctx, records); err != nil {
		return nil, internal(MsgServerError, err)
	}

	s.log.WithFields(logrus.Fields{
		"customer_id": customerID,
		"products":    len(productIDs),
	}).Info("Products suggested to customer")
	return s.listFor(ctx, models.EntityRef{ID: customerID, Type: models.EntityCustomer}, "")
}

// SuggestCustomersToProduct is the mirror of SuggestProductsToCustomer.
func (s *SuggestionService) SuggestCustomersToProduct(ctx context.Context, productID string, input SuggestCustomersInput) ([]SuggestionView, error) {
	customerIDs := uniqueIDs(input.CustomerIDs)
	if len(customerIDs) == 0 {
		return nil, validationFailed([]string{MsgCustomerIDsRequired})
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, lookupError(err, MsgProductNotFound)
	}
	customers, err := s.customers.FindByIDs(ctx, customerIDs)
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	if len(customers) != len(customerIDs) {
		return nil, notFound(MsgSomeCustomersMissing)
	}

	note := strings.TrimSpace(input.Note)
	at := s.now()
	records := make([]models.Suggestion, 0, 2*len(customerIDs))
	for _, customerID := range customerIDs {
		pair := models.NewSuggestionPair(customerID, productID, note, at)
		records = append(records, pair[:]...)
	}
	if err := s.suggestions.CreateMany(ctx, records); err != nil {
		return nil, internal(MsgServerError, err)
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"customers":  len(customerIDs),
	}).Info("Customers suggested to product")
	return s.listFor(ctx, models.EntityRef{ID: productID, Type: models.EntityProduct}, "")
}

func (s *SuggestionService) ForCustomer(ctx context.Context, customerID, status string) ([]SuggestionView, error) {
	return s.query(ctx, models.EntityRef{ID: customerID, Type: models.EntityCustomer}, status)
}

func (s *SuggestionService) ForProduct(ctx context.Context, productID, status string) ([]SuggestionView, error) {
	return s.query(ctx, models.EntityRef{ID: productID, Type: models.EntityProduct}, status)
}

// query reports NotFound for an empty result, whether or not the entity exists.
func (s *SuggestionService) query(ctx context.Context, entity models.EntityRef, status string) ([]SuggestionView, error) {
	filter := models.SuggestionStatus(status)
	if filter != "" && !filter.Valid() {
		return nil, invalidArgument(MsgInvalidStatusFilter)
	}
	views, err := s.listFor(ctx, entity, filter)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, notFound(MsgSuggestionNotFound)
	}
	return views, nil
}

// Resolve accepts or rejects a pending suggestion. Both records of the pair
// receive the same status, note and timestamp in one write.
func (s *SuggestionService) Resolve(ctx context.Context, id string, input ResolveSuggestionInput) ([]SuggestionView, error) {
	if input.Status != models.SuggestionAccepted && input.Status != models.SuggestionRejected {
		return nil, invalidArgument(MsgInvalidSuggestionStatus)
	}

	suggestion, err := s.suggestions.GetActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, MsgSuggestionNotFound)
	}
	if suggestion.Status != models.SuggestionPending {
		return nil, conflict(MsgSuggestionAlreadyAnswered)
	}

	key := suggestion.Key()
	changed, err := s.suggestions.ResolvePair(ctx, key, repository.Resolution{
		Status:       input.Status,
		ResponseNote: strings.TrimSpace(input.ResponseNote),
		RespondedAt:  s.now(),
	})
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	if changed == 0 {
		// Another request resolved the pair between the read and the write.
		return nil, conflict(MsgSuggestionAlreadyAnswered)
	}

	s.log.WithFields(logrus.Fields{
		"suggestion_id": id,
		"status":        input.Status,
		"records":       changed,
	}).Info("Suggestion resolved")

	pair, err := s.suggestions.ListPair(ctx, key)
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	return s.enrich(ctx, pair)
}

// Delete soft-deletes both records of the suggestion's pair.
func (s *SuggestionService) Delete(ctx context.Context, id string) error {
	suggestion, err := s.suggestions.GetActive(ctx, id)
	if err != nil {
		return lookupError(err, MsgSuggestionNotFound)
	}
	changed, err := s.suggestions.DeactivatePair(ctx, suggestion.Key())
	if err != nil {
		return internal(MsgServerError, err)
	}
	if changed == 0 {
		return notFound(MsgSuggestionNotFound)
	}
	s.log.WithFields(logrus.Fields{
		"suggestion_id": id,
		"records":       changed,
	}).Info("Suggestion deactivated")
	return nil
}

func (s *SuggestionService) listFor(ctx context.Context, entity models.EntityRef, status models.SuggestionStatus) ([]SuggestionView, error) {
	suggestions, err := s.suggestions.ListByEntity(ctx, repository.SuggestionFilter{Entity: entity, Status: status})
	if err != nil {
		return nil, internal(MsgServerError, err)
	}
	return s.enrich(ctx, suggestions)
}

// enrich attaches display summaries of the referenced customers and products.
// A reference that no longer resolves is left without a summary.
func (s *SuggestionService) enrich(ctx context.Context, suggestions []models.Suggestion) ([]SuggestionView, error) {
	views := make([]SuggestionView, len(suggestions))
	if len(suggestions) == 0 {
		return views, nil
	}

	var customerIDs, productIDs []string
	for _, sg := range suggestions {
		for _, ref := range []models.EntityRef{sg.Key().Source, sg.Key().Target} {
			switch ref.Type {
			case models.EntityCustomer:
				customerIDs = append(customerIDs, ref.ID)
			case models.EntityProduct:
				productIDs = append(productIDs, ref.ID)
			}
		}
	}

	summaries := make(map[models.EntityRef]*EntitySummary)
	if ids := uniqueIDs(customerIDs); len(ids) > 0 {
		customers, err := s.customers.FindByIDs(ctx, ids)
		if err != nil {
			return nil, internal(MsgServerError, err)
		}
		for _, c := range customers {
			summaries[models.EntityRef{ID: c.ID, Type: models.EntityCustomer}] = &EntitySummary{
				ID:        c.ID,
				Type:      models.EntityCustomer,
				StoreName: c.StoreName,
				Phone:     c.Phone,
			}
		}
	}
	if ids := uniqueIDs(productIDs); len(ids) > 0 {
		products, err := s.products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, internal(MsgServerError, err)
		}
		for _, p := range products {
			price := p.Price
			summaries[models.EntityRef{ID: p.ID, Type: models.EntityProduct}] = &EntitySummary{
				ID:          p.ID,
				Type:        models.EntityProduct,
				Name:        p.Name,
				Price:       &price,
				Description: p.Description,
			}
		}
	}

	for i, sg := range suggestions {
		key := sg.Key()
		views[i] = SuggestionView{
			Suggestion: sg,
			Source:     summaries[key.Source],
			Target:     summaries[key.Target],
		}
	}
	return views, nil
}

// uniqueIDs trims ids and drops blanks and duplicates, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
