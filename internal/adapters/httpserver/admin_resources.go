package httpserver

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/mgiraldez/aurelia/internal/domain"
)

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	_, productCount, _ := s.catalog.ListProducts(r.Context(), domain.ProductFilter{Page: 1, PageSize: 1})
	types, _ := s.catalog.ListTypes(r.Context())
	messages, _ := s.contact.List(r.Context())
	reviews, _ := s.reviews.List(r.Context())
	subscribers, _ := s.newsletter.List(r.Context())
	newMessages := 0
	for _, m := range messages {
		if m.Status == domain.ContactStatusNew {
			newMessages++
		}
	}
	pendingReviews := 0
	for _, rv := range reviews {
		if rv.Status == domain.ReviewStatusPending {
			pendingReviews++
		}
	}
	s.render(w, "admin_dashboard.html", map[string]any{
		"AdminEmail":      email,
		"ProductCount":    productCount,
		"TypeCount":       len(types),
		"MessageCount":    len(messages),
		"NewMessages":     newMessages,
		"ReviewCount":     len(reviews),
		"PendingReviews":  pendingReviews,
		"SubscriberCount": len(subscribers),
	})
}

// --- Product types ---

func (s *Server) renderAdminProductTypes(w http.ResponseWriter, r *http.Request, email string, extra map[string]any) {
	types, err := s.catalog.ListTypes(r.Context())
	counts := map[uuid.UUID]int64{}
	for _, t := range types {
		if n, err := s.catalog.Products.CountByType(r.Context(), t.ID); err == nil {
			counts[t.ID] = n
		}
	}
	data := map[string]any{"AdminEmail": email, "Types": types, "Counts": counts}
	if err != nil {
		log.Error().Err(err).Msg("list product types")
		data["Error"] = errMessage(err)
	}
	for k, v := range extra {
		data[k] = v
	}
	s.render(w, "admin_product_types.html", data)
}

func (s *Server) handleAdminProductTypes(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	s.renderAdminProductTypes(w, r, email, nil)
}

func (s *Server) handleAdminProductTypeCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	t := &domain.ProductType{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	// Upload first: if the attached image fails, nothing is created.
	imgURL, err := s.readUpload(r, "image")
	if err != nil {
		log.Error().Err(err).Msg("type image upload")
		s.renderAdminProductTypes(w, r, email, map[string]any{"Error": errMessage(err), "Form": t})
		return
	}
	t.ImageURL = imgURL
	if err := s.catalog.CreateType(r.Context(), t); err != nil {
		log.Error().Err(err).Msg("create product type")
		s.renderAdminProductTypes(w, r, email, map[string]any{"Error": errMessage(err), "Form": t})
		return
	}
	http.Redirect(w, r, "/admin/product-types", http.StatusSeeOther)
}

func (s *Server) handleAdminProductTypeUpdate(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	// The snapshot keeps the typed values on screen when the submit fails.
	edit := &domain.ProductType{
		ID:          id,
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	fields := map[string]any{
		"name":        edit.Name,
		"description": edit.Description,
	}
	imgURL, err := s.readUpload(r, "image")
	if err != nil {
		log.Error().Err(err).Msg("type image upload")
		s.renderAdminProductTypes(w, r, email, map[string]any{"Error": errMessage(err), "Edit": edit})
		return
	}
	if imgURL != "" {
		fields["image_url"] = imgURL
	}
	if _, err := s.catalog.UpdateType(r.Context(), id, fields); err != nil {
		log.Error().Err(err).Msg("update product type")
		s.renderAdminProductTypes(w, r, email, map[string]any{"Error": errMessage(err), "Edit": edit})
		return
	}
	http.Redirect(w, r, "/admin/product-types", http.StatusSeeOther)
}

func (s *Server) handleAdminProductTypeDelete(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.catalog.DeleteType(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete product type")
		s.renderAdminProductTypes(w, r, email, map[string]any{"Error": errMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin/product-types", http.StatusSeeOther)
}

// --- Products ---

func (s *Server) renderAdminProducts(w http.ResponseWriter, r *http.Request, email string, extra map[string]any) {
	list, total, err := s.catalog.ListProducts(r.Context(), domain.ProductFilter{Page: 1, PageSize: 200})
	types, _ := s.catalog.ListTypes(r.Context())
	data := map[string]any{"AdminEmail": email, "Products": list, "Total": total, "Types": types}
	if err != nil {
		log.Error().Err(err).Msg("list products")
		data["Error"] = errMessage(err)
	}
	for k, v := range extra {
		data[k] = v
	}
	s.render(w, "admin_products.html", data)
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	s.renderAdminProducts(w, r, email, nil)
}

func (s *Server) handleAdminProductCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	typeID, _ := uuid.Parse(r.FormValue("product_type_id"))
	p := &domain.Product{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         price,
		ProductTypeID: typeID,
	}
	imgURL, err := s.readUpload(r, "image")
	if err != nil {
		log.Error().Err(err).Msg("product image upload")
		s.renderAdminProducts(w, r, email, map[string]any{"Error": errMessage(err), "Form": p})
		return
	}
	p.ImageURL = imgURL
	if err := s.catalog.CreateProduct(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("create product")
		s.renderAdminProducts(w, r, email, map[string]any{"Error": errMessage(err), "Form": p})
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleAdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	// The snapshot keeps the typed values on screen when the submit fails.
	edit := &domain.Product{
		ID:          id,
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	fields := map[string]any{
		"name":        edit.Name,
		"description": edit.Description,
	}
	if tid, err := uuid.Parse(r.FormValue("product_type_id")); err == nil {
		edit.ProductTypeID = tid
		fields["product_type_id"] = tid
	}
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.renderAdminProducts(w, r, email, map[string]any{"Error": "Price must be a number.", "Edit": edit})
			return
		}
		edit.Price = price
		fields["price"] = price
	}
	imgURL, err := s.readUpload(r, "image")
	if err != nil {
		log.Error().Err(err).Msg("product image upload")
		s.renderAdminProducts(w, r, email, map[string]any{"Error": errMessage(err), "Edit": edit})
		return
	}
	if imgURL != "" {
		fields["image_url"] = imgURL
	}
	if _, err := s.catalog.UpdateProduct(r.Context(), id, fields); err != nil {
		log.Error().Err(err).Msg("update product")
		s.renderAdminProducts(w, r, email, map[string]any{"Error": errMessage(err), "Edit": edit})
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.catalog.DeleteProduct(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete product")
		s.renderAdminProducts(w, r, email, map[string]any{"Error": errMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// --- Newsletter ---

func (s *Server) handleAdminNewsletter(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	subs, err := s.newsletter.List(r.Context())
	if err != nil {
		s.renderError(w, "could not load subscribers")
		return
	}
	s.render(w, "admin_newsletter.html", map[string]any{
		"AdminEmail":  email,
		"Subscribers": subs,
		"Error":       r.URL.Query().Get("err"),
	})
}

func (s *Server) handleAdminNewsletterDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.newsletter.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete subscriber")
	}
	http.Redirect(w, r, "/admin/newsletter", http.StatusSeeOther)
}

func (s *Server) handleAdminNewsletterExport(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	subs, err := s.newsletter.List(r.Context())
	if err != nil {
		s.renderError(w, "could not load subscribers")
		return
	}
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Subscribers"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.renderError(w, "export failed")
		return
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	_ = f.SetCellValue(sheet, "A1", "Email")
	_ = f.SetCellValue(sheet, "B1", "Subscribed")
	for i, sub := range subs {
		row := strconv.Itoa(i + 2)
		_ = f.SetCellValue(sheet, "A"+row, sub.Email)
		_ = f.SetCellValue(sheet, "B"+row, sub.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="subscribers.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("newsletter export")
	}
}

// --- Contact messages ---

func (s *Server) handleAdminContact(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	s.renderAdminContact(w, r, email, nil)
}

func (s *Server) renderAdminContact(w http.ResponseWriter, r *http.Request, email string, extra map[string]any) {
	messages, err := s.contact.List(r.Context())
	data := map[string]any{"AdminEmail": email, "Messages": messages}
	if err != nil {
		log.Error().Err(err).Msg("list contact messages")
		data["Error"] = errMessage(err)
	}
	for k, v := range extra {
		data[k] = v
	}
	s.render(w, "admin_contact.html", data)
}

func (s *Server) handleAdminContactStatus(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	to := domain.ContactStatus(r.FormValue("status"))
	if to != domain.ContactStatusRead && to != domain.ContactStatusReplied {
		http.Error(w, "status", 400)
		return
	}
	if _, err := s.contact.SetStatus(r.Context(), id, to); err != nil {
		log.Error().Err(err).Msg("contact status")
		s.renderAdminContact(w, r, email, map[string]any{"Error": errMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin/contact", http.StatusSeeOther)
}

func (s *Server) handleAdminContactDelete(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.contact.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete contact message")
		s.renderAdminContact(w, r, email, map[string]any{"Error": errMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin/contact", http.StatusSeeOther)
}

// --- Reviews ---

func (s *Server) handleAdminReviews(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	s.renderAdminReviews(w, r, email, nil)
}

func (s *Server) renderAdminReviews(w http.ResponseWriter, r *http.Request, email string, extra map[string]any) {
	reviews, err := s.reviews.List(r.Context())
	data := map[string]any{"AdminEmail": email, "Reviews": reviews}
	if err != nil {
		log.Error().Err(err).Msg("list reviews")
		data["Error"] = errMessage(err)
	}
	for k, v := range extra {
		data[k] = v
	}
	s.render(w, "admin_reviews.html", data)
}

func (s *Server) handleAdminReviewStatus(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	to := domain.ReviewStatus(r.FormValue("status"))
	if to != domain.ReviewStatusApproved && to != domain.ReviewStatusRejected {
		http.Error(w, "status", 400)
		return
	}
	if _, err := s.reviews.SetStatus(r.Context(), id, to); err != nil {
		log.Error().Err(err).Msg("review status")
		s.renderAdminReviews(w, r, email, map[string]any{"Error": errMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin/reviews", http.StatusSeeOther)
}

func (s *Server) handleAdminReviewDelete(w http.ResponseWriter, r *http.Request) {
	email, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.reviews.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete review")
		s.renderAdminReviews(w, r, email, map[string]any{"Error": errMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin/reviews", http.StatusSeeOther)
}

// readUpload stores the attached file, if any, and returns its public
// URL. An empty URL with nil error means no file was attached.
func (s *Server) readUpload(r *http.Request, field string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	fhs := r.MultipartForm.File[field]
	if len(fhs) == 0 || fhs[0].Size == 0 {
		return "", nil
	}
	f, err := fhs[0].Open()
	if err != nil {
		return "", &domain.UploadError{Err: err}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", &domain.UploadError{Err: err}
	}
	return s.storage.SaveImage(r.Context(), fhs[0].Filename, data)
}
