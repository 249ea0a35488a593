package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/notify"
	service "github.com/clothsy/storefront/internal/services"
	"github.com/clothsy/storefront/internal/views"
)

// repl is the terminal storefront: each command maps to a page view or a
// store operation.
type repl struct {
	session  *service.SessionService
	cart     *service.CartService
	wishlist *service.WishlistService
	catalog  *service.CatalogService
	seller   *service.SellerService
	header   *views.Header
	out      io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) {

	scanner := bufio.NewScanner(in)

	r.printHeader()
	fmt.Fprintln(r.out, `Type "help" for commands.`)

	for {
		fmt.Fprint(r.out, "> ")

		if !scanner.Scan() {
			return
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}

		r.dispatch(ctx, fields[0], fields[1:])
	}
}

func (r *repl) dispatch(ctx context.Context, cmd string, args []string) {

	switch cmd {
	case "help":
		r.printHelp()
	case "home":
		r.showHome(ctx)
	case "shop":
		r.showGender(ctx, args)
	case "login":
		if len(args) != 2 {
			fmt.Fprintln(r.out, "usage: login <email> <password>")

			return
		}

		r.session.Login(ctx, args[0], args[1])
	case "register":
		if len(args) != 3 {
			fmt.Fprintln(r.out, "usage: register <name> <email> <password>")

			return
		}

		r.session.Register(ctx, args[0], args[1], args[2])
	case "logout":
		r.session.Logout()
	case "whoami":
		r.printHeader()
	case "cart":
		r.showCart(ctx)
	case "add":
		r.addToCart(ctx, args)
	case "qty":
		r.updateQuantity(ctx, args)
	case "rm":
		if len(args) != 1 {
			fmt.Fprintln(r.out, "usage: rm <itemID>")

			return
		}

		r.cart.Remove(ctx, args[0])
	case "wishlist":
		r.showWishlist(ctx)
	case "wish":
		if len(args) != 1 {
			fmt.Fprintln(r.out, "usage: wish <productID>")

			return
		}

		if r.wishlist.Contains(args[0]) {
			r.wishlist.Remove(ctx, args[0])
		} else {
			r.wishlist.Add(ctx, args[0])
		}
	case "become-seller":
		r.session.BecomeSeller(ctx)
	case "upload":
		r.uploadProduct(ctx, args)
	case "mine":
		for _, p := range r.seller.MyProducts(ctx) {
			r.printProduct(p)
		}
	default:
		fmt.Fprintf(r.out, "unknown command %q\n", cmd)
	}
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.out, `commands:
  home                                   browse featured products
  shop <MEN|WOMEN|KIDS> [sortBy]         browse a gender page
  login <email> <password>
  register <name> <email> <password>
  logout | whoami
  cart | add <productID> [qty] [size] [color] | qty <itemID> <n> | rm <itemID>
  wishlist | wish <productID>
  become-seller
  upload <name> <price> <categoryID> [imageFile]
  mine                                   list my uploads (sellers)
  quit`)
}

func (r *repl) printHeader() {
	fmt.Fprintf(r.out, "== Clothsy == %s | %s\n", r.header.Greeting(), r.header.CartBadge())

	if r.header.ShowSellerDashboard() {
		fmt.Fprintln(r.out, "   [seller dashboard available]")
	}
}

func (r *repl) showHome(ctx context.Context) {

	fmt.Fprintln(r.out, "loading…")

	home := r.catalog.LoadHome(ctx)

	if len(home.Featured) == 0 && len(home.Categories) == 0 {
		fmt.Fprintln(r.out, "nothing to show right now")

		return
	}

	fmt.Fprintln(r.out, "SHOP BY CATEGORY:")

	for _, c := range home.Categories {
		fmt.Fprintf(r.out, "  %s\n", c.Name)
	}

	fmt.Fprintln(r.out, "FEATURED PRODUCTS:")

	for _, p := range home.Featured {
		r.printProduct(p)
	}
}

func (r *repl) showGender(ctx context.Context, args []string) {

	if len(args) < 1 {
		fmt.Fprintln(r.out, "usage: shop <MEN|WOMEN|KIDS> [sortBy]")

		return
	}

	filter := models.ProductFilter{}
	if len(args) > 1 {
		filter.SortBy = args[1]
	}

	data := r.catalog.LoadGender(ctx, strings.ToUpper(args[0]), filter)

	for _, p := range data.Products {
		r.printProduct(p)
	}
}

func (r *repl) printProduct(p models.Product) {

	card := views.NewProductCard(p, r.wishlist.Contains(p.ID), r.session, r.cart, r.wishlist, notify.Nop{})

	line := fmt.Sprintf("  [%s] %s — ₹%.0f", p.ID, p.Name, p.EffectivePrice())

	if d := card.DiscountPercent(); d > 0 {
		line += fmt.Sprintf(" (-%d%%, was ₹%.0f)", d, p.Price)
	}

	if rating := card.AverageRating(); rating > 0 {
		line += fmt.Sprintf(" ★%.1f", rating)
	}

	if card.InWishlist() {
		line += " ♥"
	}

	if p.HasSizes() {
		line += " sizes: " + strings.Join(p.Sizes, ",")
	}

	fmt.Fprintln(r.out, line)
}

func (r *repl) showCart(ctx context.Context) {

	// the page gates on session state, a logged-out view never fetches
	if !r.session.IsAuthenticated() {
		fmt.Fprintln(r.out, "You need to login to view your cart")

		return
	}

	r.cart.Refresh(ctx)

	items := r.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(r.out, "your bag is empty")

		return
	}

	for _, item := range items {
		fmt.Fprintf(r.out, "  [%s] %s ×%d — ₹%.0f\n", item.ID, item.Product.Name, item.Quantity, item.LineTotal())
	}

	fmt.Fprintf(r.out, "total: ₹%.2f (%d items)\n", r.cart.Total(), r.cart.Count())
}

func (r *repl) showWishlist(ctx context.Context) {

	if !r.session.IsAuthenticated() {
		fmt.Fprintln(r.out, "You need to login to view your wishlist")

		return
	}

	r.wishlist.Refresh(ctx)

	items := r.wishlist.Items()
	fmt.Fprintf(r.out, "%d items saved for later\n", len(items))

	for _, item := range items {
		r.printProduct(item.Product)
	}
}

func (r *repl) addToCart(ctx context.Context, args []string) {

	if len(args) < 1 {
		fmt.Fprintln(r.out, "usage: add <productID> [qty] [size] [color]")

		return
	}

	quantity := 1

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Fprintln(r.out, "quantity must be a positive number")

			return
		}

		quantity = n
	}

	var size, color string

	if len(args) > 2 {
		size = args[2]
	}

	if len(args) > 3 {
		color = args[3]
	}

	r.cart.Add(ctx, args[0], quantity, size, color)
}

func (r *repl) updateQuantity(ctx context.Context, args []string) {

	if len(args) != 2 {
		fmt.Fprintln(r.out, "usage: qty <itemID> <n>")

		return
	}

	// decrements below 1 stop here, the store never sees them
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		fmt.Fprintln(r.out, "quantity must be a positive number")

		return
	}

	r.cart.UpdateQuantity(ctx, args[0], n)
}

func (r *repl) uploadProduct(ctx context.Context, args []string) {

	if len(args) < 3 {
		fmt.Fprintln(r.out, "usage: upload <name> <price> <categoryID> [imageFile]")

		return
	}

	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintln(r.out, "price must be a number")

		return
	}

	req := &models.CreateProductRequest{
		Name:       args[0],
		Price:      price,
		CategoryID: args[2],
		Stock:      1,
	}

	if len(args) > 3 {
		dataURL, err := encodeImageFile(args[3])
		if err != nil {
			fmt.Fprintf(r.out, "could not read image: %s\n", err)

			return
		}

		req.ImageDataURL = dataURL
	}

	r.seller.CreateProduct(ctx, req)
}

// encodeImageFile turns a local image into the base64 data URL the upload
// endpoint expects.
func encodeImageFile(path string) (string, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image", path)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
