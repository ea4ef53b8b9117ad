// Package catalog loads the static course definition (units, lessons, shop
// items and starter inventory) from YAML and turns it into the domain's
// content.Catalog and economy.Shop.
//
// The MedFluent course ships embedded; Default returns it. LoadFile reads an
// alternative definition with the same schema.
package catalog
