// Package hhdex provides an in-process Go client for hh.ru vacancy search,
// normalization and storage.
//
// The client fetches vacancies from the hh.ru API, normalizes them into flat
// records and keeps them in JSON, Excel or Parquet files inside a data
// directory. A Redis page cache can sit in front of the API.
//
//	client, _ := hhdex.New(ctx,
//	    hhdex.WithDataDir("data"),
//	    hhdex.WithRedis("localhost:6379", ""),
//	)
//	defer client.Close()
//
//	top, _ := client.Search(ctx, "golang", hhdex.Keywords("remote"), hhdex.Top(10))
//	for _, v := range top {
//	    fmt.Println(v)
//	}
//
//	res, _ := client.Collect(ctx, "golang", "it.xlsx")
//	fmt.Printf("%d new, %d total\n", res.Added, res.Total)
package hhdex
