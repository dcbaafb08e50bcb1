package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"tender-crm/internal/browse"
	"tender-crm/internal/client"
	"tender-crm/internal/query"

	"github.com/joho/godotenv"
)

// Консольный просмотр справочников: фильтрация и сортировка выполняются
// локально над загруженным набором, удаление уходит на сервер.
func main() {
	godotenv.Load()

	var (
		addr     = flag.String("addr", envOr("API_ADDR", "http://localhost:8080"), "адрес API")
		resource = flag.String("resource", "customers", "customers или lots")
		q        = flag.String("query", "", "строка поиска")
		scope    = flag.String("scope", query.ScopeAll, "поле поиска или all")
		sortKey  = flag.String("sort", query.CustomerSortNameAsc, "ключ сортировки")
		del      = flag.String("delete", "", "код контрагента или id лота для удаления")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	httpClient := &http.Client{Timeout: 10 * time.Second}

	var err error
	switch *resource {
	case "customers":
		err = runCustomers(ctx, client.NewCustomerClient(*addr, httpClient), *q, *scope, *sortKey, *del)
	case "lots":
		err = runLots(ctx, client.NewLotClient(*addr, httpClient), *q, *scope, *sortKey, *del)
	default:
		err = fmt.Errorf("unknown resource %q", *resource)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runCustomers(ctx context.Context, c *client.CustomerClient, q, scope, sortKey, del string) error {
	list := browse.NewCustomerList(c)
	if err := list.Load(ctx); err != nil {
		return err
	}

	if del != "" {
		if err := list.Delete(ctx, del); err != nil {
			return err
		}
		fmt.Println("deleted", del)
	}

	list.Query = q
	list.Scope = scope
	list.Sort = sortKey

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tTYPE\tINN\tEMAIL")
	for _, rec := range list.View() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.Code, rec.Name, rec.Classification.Label(), rec.INN, rec.Email)
	}
	return w.Flush()
}

func runLots(ctx context.Context, c *client.LotClient, q, scope, sortKey, del string) error {
	list := browse.NewLotList(c)
	if err := list.Load(ctx); err != nil {
		return err
	}

	if del != "" {
		id, err := strconv.ParseInt(del, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid lot id %q", del)
		}
		if err := list.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted", id)
	}

	list.Query = q
	list.Scope = scope
	list.Sort = sortKey

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCUSTOMER\tPRICE\tCURRENCY\tDELIVERY")
	for _, rec := range list.View() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			formatID(rec.ID), rec.Name, rec.CustomerCode, formatPrice(rec.Price), rec.CurrencyCode, rec.DateDelivery)
	}
	return w.Flush()
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
